package postgres

import (
	"context"
	"errors"
	"fmt"

	"billing-core/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// SubscriptionRepo implements ports.SubscriptionStore. One row per
// account; Put upserts the whole record.
type SubscriptionRepo struct {
	pool Pool
}

// NewSubscriptionRepo creates a new SubscriptionRepo.
func NewSubscriptionRepo(pool Pool) *SubscriptionRepo {
	return &SubscriptionRepo{pool: pool}
}

// Get fetches the subscription for an account, or nil if none exists.
func (r *SubscriptionRepo) Get(ctx context.Context, accountID string) (*domain.Subscription, error) {
	query := `SELECT account_id, wallet_id, plan_id, price, region, period_start, period_end, status,
		auto_renew, pending_plan, pending_price, pending_effective, canceled_effective
		FROM subscriptions WHERE account_id = $1`

	s := &domain.Subscription{}
	var pendingPrice decimal.NullDecimal
	err := r.pool.QueryRow(ctx, query, accountID).Scan(
		&s.AccountID, &s.WalletID, &s.PlanID, &s.Price, &s.Region, &s.PeriodStart, &s.PeriodEnd, &s.Status,
		&s.AutoRenew, &s.PendingPlan, &pendingPrice, &s.PendingEffective, &s.CanceledEffective,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	if pendingPrice.Valid {
		s.PendingPrice = &pendingPrice.Decimal
	}
	return s, nil
}

// Put upserts a subscription within a database transaction.
func (r *SubscriptionRepo) Put(ctx context.Context, tx pgx.Tx, s *domain.Subscription) error {
	query := `INSERT INTO subscriptions (account_id, wallet_id, plan_id, price, region, period_start, period_end,
		status, auto_renew, pending_plan, pending_price, pending_effective, canceled_effective)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (account_id) DO UPDATE SET
			wallet_id = EXCLUDED.wallet_id,
			plan_id = EXCLUDED.plan_id,
			price = EXCLUDED.price,
			region = EXCLUDED.region,
			period_start = EXCLUDED.period_start,
			period_end = EXCLUDED.period_end,
			status = EXCLUDED.status,
			auto_renew = EXCLUDED.auto_renew,
			pending_plan = EXCLUDED.pending_plan,
			pending_price = EXCLUDED.pending_price,
			pending_effective = EXCLUDED.pending_effective,
			canceled_effective = EXCLUDED.canceled_effective`

	var pendingPrice decimal.NullDecimal
	if s.PendingPrice != nil {
		pendingPrice = decimal.NewNullDecimal(*s.PendingPrice)
	}
	_, err := tx.Exec(ctx, query,
		s.AccountID, s.WalletID, s.PlanID, s.Price, s.Region, s.PeriodStart, s.PeriodEnd,
		s.Status, s.AutoRenew, s.PendingPlan, pendingPrice, s.PendingEffective, s.CanceledEffective,
	)
	if err != nil {
		return fmt.Errorf("upsert subscription: %w", err)
	}
	return nil
}
