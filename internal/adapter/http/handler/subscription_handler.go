package handler

import (
	"billing-core/internal/adapter/http/dto"
	"billing-core/internal/core/ports"
	"billing-core/pkg/apperror"
	"billing-core/pkg/response"

	"github.com/gin-gonic/gin"
)

// SubscriptionHandler handles subscription lifecycle endpoints.
type SubscriptionHandler struct {
	orc ports.Orchestrator
}

// NewSubscriptionHandler creates a new SubscriptionHandler.
func NewSubscriptionHandler(orc ports.Orchestrator) *SubscriptionHandler {
	return &SubscriptionHandler{orc: orc}
}

// Create handles POST /subscription/create.
func (h *SubscriptionHandler) Create(c *gin.Context) {
	var req dto.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	entry, err := h.orc.CreateSubscription(c.Request.Context(), ports.CreateSubscriptionRequest{
		AccountID:      req.AccountID,
		WalletID:       req.WalletID,
		PlanID:         req.PlanID,
		Price:          req.Price,
		Region:         req.Region,
		At:             timeOrZero(req.At),
		IdempotencyKey: req.IdempotencyKey,
		AutoRenew:      req.AutoRenew,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toLedgerEntryResponse(entry))
}

// Renew handles POST /subscription/renew. Renewal is always explicit;
// auto_renew only marks intent for the external scheduler.
func (h *SubscriptionHandler) Renew(c *gin.Context) {
	var req dto.RenewSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	entry, err := h.orc.RenewSubscription(c.Request.Context(), ports.RenewSubscriptionRequest{
		AccountID:      req.AccountID,
		At:             timeOrZero(req.At),
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toLedgerEntryResponse(entry))
}

// Upgrade handles POST /subscription/upgrade.
func (h *SubscriptionHandler) Upgrade(c *gin.Context) {
	var req dto.UpgradeSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	result, err := h.orc.UpgradeSubscription(c.Request.Context(), ports.UpgradeSubscriptionRequest{
		AccountID:      req.AccountID,
		WalletID:       req.WalletID,
		NewPlanID:      req.NewPlanID,
		NewPrice:       req.NewPrice,
		At:             timeOrZero(req.At),
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := dto.UpgradeResponse{
		Scheduled:    result.Scheduled,
		Subscription: toSubscriptionResponse(result.Subscription),
	}
	if result.Entry != nil {
		e := toLedgerEntryResponse(result.Entry)
		resp.Entry = &e
	}
	response.Created(c, resp)
}

// Cancel handles POST /subscription/cancel. The subscription stays
// active until the period boundary; nothing is refunded.
func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	var req dto.CancelSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	sub, err := h.orc.CancelSubscription(c.Request.Context(), req.AccountID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toSubscriptionResponse(sub))
}

// Get handles GET /subscription/:accountId.
func (h *SubscriptionHandler) Get(c *gin.Context) {
	sub, err := h.orc.GetSubscription(c.Request.Context(), c.Param("accountId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toSubscriptionResponse(sub))
}

// Boundary handles POST /subscription/boundary, the hook the external
// scheduler calls at each period end to apply pending changes and
// cancellations.
func (h *SubscriptionHandler) Boundary(c *gin.Context) {
	var req dto.PeriodBoundaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	sub, err := h.orc.ApplyPeriodBoundary(c.Request.Context(), req.AccountID, timeOrZero(req.At))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toSubscriptionResponse(sub))
}
