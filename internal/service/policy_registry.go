package service

import (
	"context"
	"fmt"
	"time"

	"billing-core/internal/core/domain"
	"billing-core/internal/core/ports"
	"billing-core/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// PolicyRegistryImpl implements ports.PolicyRegistry.
type PolicyRegistryImpl struct {
	repo   ports.PolicyRepository
	signer ports.Signer
	log    zerolog.Logger
}

// NewPolicyRegistry creates a new PolicyRegistryImpl.
func NewPolicyRegistry(repo ports.PolicyRepository, signer ports.Signer, log zerolog.Logger) *PolicyRegistryImpl {
	return &PolicyRegistryImpl{repo: repo, signer: signer, log: log}
}

// SignAndAdd signs the policy with the KMS signer and registers it.
func (r *PolicyRegistryImpl) SignAndAdd(ctx context.Context, policy *domain.Policy) (*domain.Policy, error) {
	if err := r.validate(policy); err != nil {
		return nil, err
	}
	sig, err := r.signer.Sign(policy.SigningPayload())
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("sign policy: %w", err))
	}
	policy.Signature = sig
	if err := r.register(ctx, policy); err != nil {
		return nil, err
	}
	return policy, nil
}

// Add registers a pre-signed policy after verifying its signature.
func (r *PolicyRegistryImpl) Add(ctx context.Context, policy *domain.Policy) error {
	if err := r.validate(policy); err != nil {
		return err
	}
	if !r.signer.Verify(policy.SigningPayload(), policy.Signature) {
		return apperror.ErrInvalidSignature()
	}
	return r.register(ctx, policy)
}

func (r *PolicyRegistryImpl) validate(policy *domain.Policy) error {
	if policy.ID == "" {
		return apperror.Validation("policy_id is required")
	}
	if policy.Version < 1 {
		return apperror.Validation("version must be >= 1")
	}
	if policy.EffectiveFrom.IsZero() {
		return apperror.Validation("effective_from is required")
	}
	if err := policy.Payload.Validate(policy.Scope); err != nil {
		return apperror.ErrInvalidPayload(err.Error())
	}
	return nil
}

// register enforces the non-retroactive ordering invariant: a new
// policy's effective_from must not predate the scope's latest one.
func (r *PolicyRegistryImpl) register(ctx context.Context, policy *domain.Policy) error {
	max, err := r.repo.MaxEffectiveFrom(ctx, policy.Scope)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("max effective_from: %w", err))
	}
	if max != nil && policy.EffectiveFrom.Before(*max) {
		return apperror.ErrPolicyRetroactive()
	}
	if err := r.repo.InsertPolicy(ctx, policy); err != nil {
		return err
	}
	r.log.Info().
		Str("policy_id", policy.ID).
		Int("version", policy.Version).
		Str("scope", policy.Scope).
		Time("effective_from", policy.EffectiveFrom).
		Msg("policy registered")
	return nil
}

// Deprecate implements ports.PolicyRegistry.
func (r *PolicyRegistryImpl) Deprecate(ctx context.Context, policyID string, version int, until time.Time) error {
	if err := r.repo.SetEffectiveUntil(ctx, policyID, version, until); err != nil {
		return err
	}
	r.log.Info().
		Str("policy_id", policyID).
		Int("version", version).
		Time("effective_until", until).
		Msg("policy deprecated")
	return nil
}

// GetPolicyFor implements ports.PolicyRegistry. Among the scope's
// policies active at the given instant, the one with the latest
// effective_from wins; ties break on the highest version.
func (r *PolicyRegistryImpl) GetPolicyFor(ctx context.Context, scope string, at time.Time) (*domain.Policy, error) {
	policies, err := r.repo.PoliciesByScope(ctx, scope)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("policies by scope: %w", err))
	}
	var best *domain.Policy
	for i := range policies {
		p := &policies[i]
		if !p.ActiveAt(at) {
			continue
		}
		if best == nil ||
			p.EffectiveFrom.After(best.EffectiveFrom) ||
			(p.EffectiveFrom.Equal(best.EffectiveFrom) && p.Version > best.Version) {
			best = p
		}
	}
	if best == nil {
		return nil, nil
	}
	cp := *best
	return &cp, nil
}

// EligibleOffers implements ports.PolicyRegistry. Offers targeting the
// wildcard scope apply alongside scope-specific ones.
func (r *PolicyRegistryImpl) EligibleOffers(ctx context.Context, scope string, at time.Time) ([]domain.Offer, error) {
	offers, err := r.repo.OffersByScopes(ctx, []string{scope, domain.ScopeAll})
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("offers by scopes: %w", err))
	}
	var out []domain.Offer
	for _, o := range offers {
		if o.ActiveAt(at) {
			out = append(out, o)
		}
	}
	return out, nil
}

// AddOffer implements ports.PolicyRegistry.
func (r *PolicyRegistryImpl) AddOffer(ctx context.Context, offer *domain.Offer) error {
	if offer.ID == "" {
		return apperror.Validation("offer_id is required")
	}
	if offer.Scope == "" {
		return apperror.Validation("scope is required")
	}
	// Only percentage discounts enter the charge formula; an offer
	// without one would never apply, so it is rejected up front.
	if offer.DiscountPercent == nil {
		return apperror.Validation("offer must carry discount_percent")
	}
	if offer.DiscountPercent.Sign() < 0 {
		return apperror.Validation("discount_percent must not be negative")
	}
	if offer.DiscountFixed != nil && offer.DiscountFixed.Sign() < 0 {
		return apperror.Validation("discount_fixed must not be negative")
	}
	return r.repo.InsertOffer(ctx, offer)
}

// RedeemOffers implements ports.PolicyRegistry. Runs inside the
// settlement transaction so redemption counts move with the charge
// they discounted.
func (r *PolicyRegistryImpl) RedeemOffers(ctx context.Context, tx pgx.Tx, offers []domain.Offer) error {
	for i := range offers {
		if err := r.repo.IncrementOfferRedemptions(ctx, tx, offers[i].ID); err != nil {
			return apperror.ErrDatabaseError(fmt.Errorf("redeem offer %s: %w", offers[i].ID, err))
		}
	}
	return nil
}

// All implements ports.PolicyRegistry.
func (r *PolicyRegistryImpl) All(ctx context.Context) ([]domain.Policy, error) {
	return r.repo.AllPolicies(ctx)
}
