package handler

import (
	"billing-core/internal/adapter/http/dto"
	"billing-core/internal/core/ports"
	"billing-core/pkg/apperror"
	"billing-core/pkg/response"

	"github.com/gin-gonic/gin"
)

// BillingHandler handles the pure charge calculation endpoint.
type BillingHandler struct {
	orc ports.Orchestrator
}

// NewBillingHandler creates a new BillingHandler.
func NewBillingHandler(orc ports.Orchestrator) *BillingHandler {
	return &BillingHandler{orc: orc}
}

// Calculate handles POST /billing/calculate. Dry run: prices a base
// amount with the region multiplier, eligible offers and tax, with no
// side effects.
func (h *BillingHandler) Calculate(c *gin.Context) {
	var req dto.CalculateChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	breakdown, err := h.orc.CalculateCharge(c.Request.Context(), req.Base, req.Region, timeOrZero(req.At))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toChargeBreakdownResponse(breakdown))
}
