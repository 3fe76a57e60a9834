package handler

import (
	"billing-core/internal/adapter/http/dto"
	"billing-core/internal/core/ports"
	"billing-core/pkg/response"

	"github.com/gin-gonic/gin"
)

// LedgerHandler handles ledger read endpoints.
type LedgerHandler struct {
	orc ports.Orchestrator
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(orc ports.Orchestrator) *LedgerHandler {
	return &LedgerHandler{orc: orc}
}

// List handles GET /ledger/:accountId. Entries are returned in append
// order.
func (h *LedgerHandler) List(c *gin.Context) {
	entries, err := h.orc.LedgerForAccount(c.Request.Context(), c.Param("accountId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.LedgerEntryResponse, 0, len(entries))
	for i := range entries {
		items = append(items, toLedgerEntryResponse(&entries[i]))
	}
	response.OK(c, items)
}
