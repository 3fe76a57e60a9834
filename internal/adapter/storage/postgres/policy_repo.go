package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"billing-core/internal/core/domain"
	"billing-core/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// PolicyRepo implements ports.PolicyRepository. Policy payloads are
// stored as JSONB; the typed variant is validated before insertion, so
// rows always hold a well-formed payload for their scope.
type PolicyRepo struct {
	pool Pool
}

// NewPolicyRepo creates a new PolicyRepo.
func NewPolicyRepo(pool Pool) *PolicyRepo {
	return &PolicyRepo{pool: pool}
}

// InsertPolicy inserts a signed policy version.
func (r *PolicyRepo) InsertPolicy(ctx context.Context, p *domain.Policy) error {
	payload, err := json.Marshal(p.Payload)
	if err != nil {
		return fmt.Errorf("marshal policy payload: %w", err)
	}
	query := `INSERT INTO policies (policy_id, version, signed_by, effective_from, effective_until, scope, payload, signature)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = r.pool.Exec(ctx, query,
		p.ID, p.Version, p.SignedBy, p.EffectiveFrom, p.EffectiveUntil, p.Scope, payload, p.Signature,
	)
	if err != nil {
		return fmt.Errorf("insert policy: %w", err)
	}
	return nil
}

// SetEffectiveUntil deprecates a policy version.
func (r *PolicyRepo) SetEffectiveUntil(ctx context.Context, policyID string, version int, until time.Time) error {
	query := `UPDATE policies SET effective_until = $1 WHERE policy_id = $2 AND version = $3`

	tag, err := r.pool.Exec(ctx, query, until, policyID, version)
	if err != nil {
		return fmt.Errorf("deprecate policy: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.ErrPolicyNotFound()
	}
	return nil
}

// PoliciesByScope returns every version registered for a scope.
func (r *PolicyRepo) PoliciesByScope(ctx context.Context, scope string) ([]domain.Policy, error) {
	query := `SELECT policy_id, version, signed_by, effective_from, effective_until, scope, payload, signature
		FROM policies WHERE scope = $1 ORDER BY effective_from, version`
	return r.listPolicies(ctx, query, scope)
}

// AllPolicies returns every registered policy version.
func (r *PolicyRepo) AllPolicies(ctx context.Context) ([]domain.Policy, error) {
	query := `SELECT policy_id, version, signed_by, effective_from, effective_until, scope, payload, signature
		FROM policies ORDER BY effective_from, version`
	return r.listPolicies(ctx, query)
}

// MaxEffectiveFrom returns the latest effective_from among a scope's
// policies, or nil if the scope has none.
func (r *PolicyRepo) MaxEffectiveFrom(ctx context.Context, scope string) (*time.Time, error) {
	query := `SELECT MAX(effective_from) FROM policies WHERE scope = $1`

	var max *time.Time
	if err := r.pool.QueryRow(ctx, query, scope).Scan(&max); err != nil {
		return nil, fmt.Errorf("max effective_from: %w", err)
	}
	return max, nil
}

// InsertOffer inserts an offer.
func (r *PolicyRepo) InsertOffer(ctx context.Context, o *domain.Offer) error {
	query := `INSERT INTO offers (id, policy_id, policy_version, scope, discount_percent, discount_fixed,
		effective_from, effective_until, max_redemptions, redemptions)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query,
		o.ID, o.PolicyID, o.PolicyVersion, o.Scope, nullDec(o.DiscountPercent), nullDec(o.DiscountFixed),
		o.EffectiveFrom, o.EffectiveUntil, o.MaxRedemptions, o.Redemptions,
	)
	if err != nil {
		return fmt.Errorf("insert offer: %w", err)
	}
	return nil
}

// IncrementOfferRedemptions counts one redemption within the
// settlement transaction that applied the offer.
func (r *PolicyRepo) IncrementOfferRedemptions(ctx context.Context, tx pgx.Tx, offerID string) error {
	query := `UPDATE offers SET redemptions = redemptions + 1 WHERE id = $1`

	tag, err := tx.Exec(ctx, query, offerID)
	if err != nil {
		return fmt.Errorf("increment offer redemptions: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("offer %s not found", offerID)
	}
	return nil
}

// OffersByScopes returns every offer targeting any of the scopes.
func (r *PolicyRepo) OffersByScopes(ctx context.Context, scopes []string) ([]domain.Offer, error) {
	query := `SELECT id, policy_id, policy_version, scope, discount_percent, discount_fixed,
		effective_from, effective_until, max_redemptions, redemptions
		FROM offers WHERE scope = ANY($1) ORDER BY effective_from`

	rows, err := r.pool.Query(ctx, query, scopes)
	if err != nil {
		return nil, fmt.Errorf("offers by scopes: %w", err)
	}
	defer rows.Close()

	var offers []domain.Offer
	for rows.Next() {
		o := domain.Offer{}
		var pct, fixed decimal.NullDecimal
		err := rows.Scan(
			&o.ID, &o.PolicyID, &o.PolicyVersion, &o.Scope, &pct, &fixed,
			&o.EffectiveFrom, &o.EffectiveUntil, &o.MaxRedemptions, &o.Redemptions,
		)
		if err != nil {
			return nil, fmt.Errorf("scan offer: %w", err)
		}
		if pct.Valid {
			o.DiscountPercent = &pct.Decimal
		}
		if fixed.Valid {
			o.DiscountFixed = &fixed.Decimal
		}
		offers = append(offers, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate offer rows: %w", err)
	}
	return offers, nil
}

func (r *PolicyRepo) listPolicies(ctx context.Context, query string, args ...any) ([]domain.Policy, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list policies: %w", err)
	}
	defer rows.Close()

	var policies []domain.Policy
	for rows.Next() {
		p := domain.Policy{}
		var payload []byte
		err := rows.Scan(&p.ID, &p.Version, &p.SignedBy, &p.EffectiveFrom, &p.EffectiveUntil, &p.Scope, &payload, &p.Signature)
		if err != nil {
			return nil, fmt.Errorf("scan policy: %w", err)
		}
		if err := json.Unmarshal(payload, &p.Payload); err != nil {
			return nil, fmt.Errorf("unmarshal policy payload: %w", err)
		}
		policies = append(policies, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate policy rows: %w", err)
	}
	return policies, nil
}

func nullDec(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}
