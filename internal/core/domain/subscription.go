package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodLength is the fixed subscription billing period.
const PeriodLength = 30 * 24 * time.Hour

// SubscriptionStatus is the lifecycle state of a subscription.
type SubscriptionStatus string

const (
	SubscriptionStatusActive        SubscriptionStatus = "active"
	SubscriptionStatusPendingChange SubscriptionStatus = "pending_change"
	SubscriptionStatusCanceled      SubscriptionStatus = "canceled"
	SubscriptionStatusClosed        SubscriptionStatus = "closed"
)

// Subscription is one account's plan subscription. At most one exists
// per account (enforced by the entitlement layer upstream). Downgrades
// and cancellations never refund: they take effect at PeriodEnd via
// the pending/canceled fields, applied by the period boundary hook.
type Subscription struct {
	AccountID         string             `json:"account_id"`
	WalletID          string             `json:"wallet_id"`
	PlanID            string             `json:"plan_id"`
	Price             decimal.Decimal    `json:"price"`
	Region            string             `json:"region"`
	PeriodStart       time.Time          `json:"period_start"`
	PeriodEnd         time.Time          `json:"period_end"`
	Status            SubscriptionStatus `json:"status"`
	AutoRenew         bool               `json:"auto_renew"`
	PendingPlan       *string            `json:"pending_plan,omitempty"`
	PendingPrice      *decimal.Decimal   `json:"pending_price,omitempty"`
	PendingEffective  *time.Time         `json:"pending_effective,omitempty"`
	CanceledEffective *time.Time         `json:"canceled_effective,omitempty"`
}

// Billable reports whether the subscription can be charged (renewal or
// upgrade). Subscriptions with a scheduled downgrade remain billable.
func (s *Subscription) Billable() bool {
	return s.Status == SubscriptionStatusActive || s.Status == SubscriptionStatusPendingChange
}

// RemainingRatio is the fraction of the current period left at t,
// clamped to [0, 1]. Used for upgrade proration.
func (s *Subscription) RemainingRatio(t time.Time) decimal.Decimal {
	total := s.PeriodEnd.Sub(s.PeriodStart)
	if total <= 0 {
		return decimal.Zero
	}
	left := s.PeriodEnd.Sub(t)
	if left <= 0 {
		return decimal.Zero
	}
	if left > total {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromInt(left.Nanoseconds()).Div(decimal.NewFromInt(total.Nanoseconds()))
}
