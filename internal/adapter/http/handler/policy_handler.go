package handler

import (
	"billing-core/internal/adapter/http/dto"
	"billing-core/internal/core/domain"
	"billing-core/internal/core/ports"
	"billing-core/pkg/apperror"
	"billing-core/pkg/response"

	"github.com/gin-gonic/gin"
)

// PolicyHandler handles policy registration and deprecation endpoints.
type PolicyHandler struct {
	registry ports.PolicyRegistry
}

// NewPolicyHandler creates a new PolicyHandler.
func NewPolicyHandler(registry ports.PolicyRegistry) *PolicyHandler {
	return &PolicyHandler{registry: registry}
}

// Create handles POST /policy. The policy is signed via the configured
// KMS backend, then registered; retroactive effective_from for an
// already-covered scope is rejected.
func (h *PolicyHandler) Create(c *gin.Context) {
	var req dto.CreatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	policy := &domain.Policy{
		ID:            req.PolicyID,
		Version:       req.Version,
		SignedBy:      req.SignedBy,
		EffectiveFrom: req.EffectiveFrom,
		Scope:         req.Scope,
		Payload: domain.PolicyPayload{
			Kind: domain.PayloadKind(req.Payload.Kind),
			Pricing: domain.PricingParams{
				PercentFee:     req.Payload.Pricing.PercentFee,
				FixedFee:       req.Payload.Pricing.FixedFee,
				PerUnit:        req.Payload.Pricing.PerUnit,
				PerChar:        req.Payload.Pricing.PerChar,
				PerToken:       req.Payload.Pricing.PerToken,
				CommissionRate: req.Payload.Pricing.CommissionRate,
				BasePrice:      req.Payload.Pricing.BasePrice,
			},
		},
	}

	signed, err := h.registry.SignAndAdd(c.Request.Context(), policy)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toPolicyResponse(signed))
}

// Deprecate handles POST /policy/deprecate. Sets effective_until on an
// existing version; the row is never deleted.
func (h *PolicyHandler) Deprecate(c *gin.Context) {
	var req dto.DeprecatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	if err := h.registry.Deprecate(c.Request.Context(), req.PolicyID, req.Version, req.EffectiveUntil); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"policy_id": req.PolicyID, "version": req.Version, "deprecated": true})
}

// CreateOffer handles POST /policy/offer.
func (h *PolicyHandler) CreateOffer(c *gin.Context) {
	var req dto.CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	offer := &domain.Offer{
		ID:              req.OfferID,
		PolicyID:        req.PolicyID,
		PolicyVersion:   req.PolicyVersion,
		Scope:           req.Scope,
		DiscountPercent: req.DiscountPercent,
		DiscountFixed:   req.DiscountFixed,
		EffectiveFrom:   req.EffectiveFrom,
		EffectiveUntil:  req.EffectiveUntil,
		MaxRedemptions:  req.MaxRedemptions,
	}

	if err := h.registry.AddOffer(c.Request.Context(), offer); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"offer_id": offer.ID})
}

// List handles GET /policy.
func (h *PolicyHandler) List(c *gin.Context) {
	policies, err := h.registry.All(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.PolicyResponse, 0, len(policies))
	for i := range policies {
		items = append(items, toPolicyResponse(&policies[i]))
	}
	response.OK(c, items)
}
