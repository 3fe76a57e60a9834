package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CalculateChargeRequest is the request body for a dry-run charge
// calculation. No side effects.
type CalculateChargeRequest struct {
	Base   decimal.Decimal `json:"base" binding:"required"`
	Region string          `json:"region" binding:"required"`
	At     *time.Time      `json:"at,omitempty"`
}

// CreateSubscriptionRequest is the request body for opening a
// subscription. The first full period is charged immediately.
type CreateSubscriptionRequest struct {
	AccountID      string          `json:"account_id" binding:"required,max=100"`
	WalletID       string          `json:"wallet_id" binding:"required,max=100"`
	PlanID         string          `json:"plan_id" binding:"required,max=100"`
	Price          decimal.Decimal `json:"price" binding:"required"`
	Region         string          `json:"region" binding:"required"`
	At             *time.Time      `json:"at,omitempty"`
	IdempotencyKey *string         `json:"idempotency_key,omitempty"`
	AutoRenew      bool            `json:"auto_renew"`
}

// RenewSubscriptionRequest is the request body for an explicit renewal.
type RenewSubscriptionRequest struct {
	AccountID      string     `json:"account_id" binding:"required"`
	At             *time.Time `json:"at,omitempty"`
	IdempotencyKey *string    `json:"idempotency_key,omitempty"`
}

// UpgradeSubscriptionRequest is the request body for a mid-period plan
// change. Upgrades charge the prorated delta now; downgrades are
// scheduled for the period boundary.
type UpgradeSubscriptionRequest struct {
	AccountID      string          `json:"account_id" binding:"required"`
	WalletID       string          `json:"wallet_id" binding:"required"`
	NewPlanID      string          `json:"new_plan_id" binding:"required"`
	NewPrice       decimal.Decimal `json:"new_price" binding:"required"`
	At             *time.Time      `json:"at,omitempty"`
	IdempotencyKey *string         `json:"idempotency_key,omitempty"`
}

// CancelSubscriptionRequest is the request body for cancellation. The
// subscription stays active until the period boundary; no refund.
type CancelSubscriptionRequest struct {
	AccountID string `json:"account_id" binding:"required"`
}

// PeriodBoundaryRequest is the request body for the boundary hook the
// external scheduler calls at each period end.
type PeriodBoundaryRequest struct {
	AccountID string     `json:"account_id" binding:"required"`
	At        *time.Time `json:"at,omitempty"`
}

// UsageEventRequest carries one usage event to price.
type UsageEventRequest struct {
	Engine  string            `json:"engine" binding:"required"`
	EventID *string           `json:"event_id,omitempty"`
	Units   *decimal.Decimal  `json:"units,omitempty"`
	Amount  *decimal.Decimal  `json:"amount,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// ActivityChargeRequest is the request body for a usage-based charge.
type ActivityChargeRequest struct {
	AccountID      string            `json:"account_id" binding:"required"`
	WalletID       string            `json:"wallet_id" binding:"required"`
	Event          UsageEventRequest `json:"event" binding:"required"`
	Region         string            `json:"region" binding:"required"`
	At             *time.Time        `json:"at,omitempty"`
	IdempotencyKey *string           `json:"idempotency_key,omitempty"`
}

// PricingParamsRequest carries the pricing knobs of a policy payload.
type PricingParamsRequest struct {
	PercentFee     *decimal.Decimal `json:"percent_fee,omitempty"`
	FixedFee       *decimal.Decimal `json:"fixed_fee,omitempty"`
	PerUnit        *decimal.Decimal `json:"per_unit,omitempty"`
	PerChar        *decimal.Decimal `json:"per_char,omitempty"`
	PerToken       *decimal.Decimal `json:"per_token,omitempty"`
	CommissionRate *decimal.Decimal `json:"commission_rate,omitempty"`
	BasePrice      *decimal.Decimal `json:"base_price,omitempty"`
}

// PolicyPayloadRequest is the typed policy body.
type PolicyPayloadRequest struct {
	Kind    string               `json:"kind" binding:"required"`
	Pricing PricingParamsRequest `json:"pricing"`
}

// CreatePolicyRequest is the request body for registering a policy.
// The server signs via the KMS collaborator before registration.
type CreatePolicyRequest struct {
	PolicyID      string               `json:"policy_id" binding:"required,max=100"`
	Version       int                  `json:"version" binding:"required,gt=0"`
	SignedBy      string               `json:"signed_by" binding:"required"`
	EffectiveFrom time.Time            `json:"effective_from" binding:"required"`
	Scope         string               `json:"scope" binding:"required"`
	Payload       PolicyPayloadRequest `json:"payload" binding:"required"`
}

// DeprecatePolicyRequest is the request body for deprecating a policy
// version. The policy row is never deleted.
type DeprecatePolicyRequest struct {
	PolicyID       string    `json:"policy_id" binding:"required"`
	Version        int       `json:"version" binding:"required,gt=0"`
	EffectiveUntil time.Time `json:"effective_until" binding:"required"`
}

// CreateOfferRequest is the request body for registering a discount
// offer under a policy.
type CreateOfferRequest struct {
	OfferID         string           `json:"offer_id" binding:"required,max=100"`
	PolicyID        string           `json:"policy_id" binding:"required"`
	PolicyVersion   int              `json:"policy_version" binding:"required,gt=0"`
	Scope           string           `json:"scope" binding:"required"`
	DiscountPercent *decimal.Decimal `json:"discount_percent,omitempty"`
	DiscountFixed   *decimal.Decimal `json:"discount_fixed,omitempty"`
	EffectiveFrom   time.Time        `json:"effective_from" binding:"required"`
	EffectiveUntil  *time.Time       `json:"effective_until,omitempty"`
	MaxRedemptions  *int             `json:"max_redemptions,omitempty"`
}

// CreateWalletRequest is the request body for opening a wallet.
type CreateWalletRequest struct {
	WalletID       string          `json:"wallet_id" binding:"required,max=100"`
	AccountID      string          `json:"account_id" binding:"required,max=100"`
	Currency       string          `json:"currency" binding:"required,len=3"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

// CreditWalletRequest is the request body for adding funds.
type CreditWalletRequest struct {
	AccountID string          `json:"account_id" binding:"required"`
	WalletID  string          `json:"wallet_id" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	At        *time.Time      `json:"at,omitempty"`
}

// TaxBreakdownResponse is the tax component of a charge.
type TaxBreakdownResponse struct {
	Region string `json:"region"`
	Rate   string `json:"rate"`
	Amount string `json:"amount"`
}

// ChargeBreakdownResponse is the response body for a priced charge.
type ChargeBreakdownResponse struct {
	Base            string               `json:"base"`
	Fees            string               `json:"fees"`
	Commission      string               `json:"commission"`
	DiscountPercent string               `json:"discount_percent"`
	DiscountAmount  string               `json:"discount_amount"`
	Subtotal        string               `json:"subtotal"`
	Tax             TaxBreakdownResponse `json:"tax"`
	Total           string               `json:"total"`
	Description     string               `json:"description"`
}

// LedgerEntryResponse is the response body for a ledger entry.
// Decimals are rendered as strings to preserve precision.
type LedgerEntryResponse struct {
	EntryID         string                `json:"entry_id"`
	Timestamp       string                `json:"timestamp"`
	AccountID       string                `json:"account_id"`
	WalletID        string                `json:"wallet_id"`
	Type            string                `json:"type"`
	Amount          string                `json:"amount"`
	Currency        string                `json:"currency"`
	BalanceAfter    string                `json:"balance_after"`
	PrevHash        *string               `json:"prev_hash"`
	EntryHash       string                `json:"entry_hash"`
	IdempotencyKey  *string               `json:"idempotency_key,omitempty"`
	SourceEngine    *string               `json:"source_engine,omitempty"`
	SourceEventID   *string               `json:"source_event_id,omitempty"`
	PolicyID        *string               `json:"policy_id,omitempty"`
	PolicyVersion   *int                  `json:"policy_version,omitempty"`
	Region          *string               `json:"region,omitempty"`
	Tax             *TaxBreakdownResponse `json:"tax,omitempty"`
	UserExplanation *string               `json:"user_explanation,omitempty"`
}

// SubscriptionResponse is the response body for a subscription.
type SubscriptionResponse struct {
	AccountID         string  `json:"account_id"`
	WalletID          string  `json:"wallet_id"`
	PlanID            string  `json:"plan_id"`
	Price             string  `json:"price"`
	Region            string  `json:"region"`
	PeriodStart       string  `json:"period_start"`
	PeriodEnd         string  `json:"period_end"`
	Status            string  `json:"status"`
	AutoRenew         bool    `json:"auto_renew"`
	PendingPlan       *string `json:"pending_plan,omitempty"`
	PendingPrice      *string `json:"pending_price,omitempty"`
	PendingEffective  *string `json:"pending_effective,omitempty"`
	CanceledEffective *string `json:"canceled_effective,omitempty"`
}

// UpgradeResponse distinguishes an immediate prorated charge from a
// scheduled downgrade.
type UpgradeResponse struct {
	Scheduled    bool                 `json:"scheduled"`
	Entry        *LedgerEntryResponse `json:"entry,omitempty"`
	Subscription SubscriptionResponse `json:"subscription"`
}

// WalletResponse is the response body for a wallet.
type WalletResponse struct {
	WalletID  string `json:"wallet_id"`
	AccountID string `json:"account_id"`
	Currency  string `json:"currency"`
	Balance   string `json:"balance"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// PolicyResponse is the response body for a registered policy.
type PolicyResponse struct {
	PolicyID       string               `json:"policy_id"`
	Version        int                  `json:"version"`
	SignedBy       string               `json:"signed_by"`
	EffectiveFrom  string               `json:"effective_from"`
	EffectiveUntil *string              `json:"effective_until,omitempty"`
	Scope          string               `json:"scope"`
	Payload        PolicyPayloadRequest `json:"payload"`
	Signature      string               `json:"signature"`
}

// ChainVerificationResponse is the response body for a wallet chain
// verification run.
type ChainVerificationResponse struct {
	WalletID string `json:"wallet_id"`
	Valid    bool   `json:"valid"`
}

// MerkleRootResponse is the response body for an audit snapshot.
type MerkleRootResponse struct {
	ID         string `json:"id"`
	Root       string `json:"root"`
	EntryCount int    `json:"entry_count"`
	TakenAt    string `json:"taken_at"`
}
