package handler

import (
	"time"

	"billing-core/internal/adapter/http/dto"
	"billing-core/internal/core/ports"
	"billing-core/pkg/response"

	"github.com/gin-gonic/gin"
)

// AuditHandler handles hash chain verification and merkle snapshot
// endpoints.
type AuditHandler struct {
	audit ports.AuditService
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(audit ports.AuditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// Verify handles GET /audit/verify/:walletId. Recomputes every entry
// hash in the wallet's chain and checks the prev_hash linkage.
func (h *AuditHandler) Verify(c *gin.Context) {
	walletID := c.Param("walletId")
	if err := h.audit.VerifyWalletChain(c.Request.Context(), walletID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ChainVerificationResponse{WalletID: walletID, Valid: true})
}

// Snapshot handles POST /audit/snapshot. Persists the merkle root over
// all ledger entry hashes at the current time.
func (h *AuditHandler) Snapshot(c *gin.Context) {
	root, err := h.audit.Snapshot(c.Request.Context(), time.Now().UTC())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.MerkleRootResponse{
		ID:         root.ID.String(),
		Root:       root.Root,
		EntryCount: root.EntryCount,
		TakenAt:    root.TakenAt.UTC().Format(time.RFC3339),
	})
}
