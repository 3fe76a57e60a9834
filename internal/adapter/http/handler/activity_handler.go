package handler

import (
	"billing-core/internal/adapter/http/dto"
	"billing-core/internal/core/domain"
	"billing-core/internal/core/ports"
	"billing-core/pkg/apperror"
	"billing-core/pkg/response"

	"github.com/gin-gonic/gin"
)

// ActivityHandler handles usage-based charge endpoints.
type ActivityHandler struct {
	orc ports.Orchestrator
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(orc ports.Orchestrator) *ActivityHandler {
	return &ActivityHandler{orc: orc}
}

// Charge handles POST /activity/charge. The event is priced by its
// vertical's engine and debited atomically.
func (h *ActivityHandler) Charge(c *gin.Context) {
	var req dto.ActivityChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	entry, err := h.orc.RecordUsage(c.Request.Context(), ports.RecordUsageRequest{
		AccountID: req.AccountID,
		WalletID:  req.WalletID,
		Event: domain.UsageEvent{
			Engine:  req.Event.Engine,
			EventID: req.Event.EventID,
			Units:   req.Event.Units,
			Amount:  req.Event.Amount,
			Details: req.Event.Details,
		},
		Region:         req.Region,
		At:             timeOrZero(req.At),
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toLedgerEntryResponse(entry))
}
