package handler

import (
	"billing-core/internal/adapter/http/dto"
	"billing-core/internal/core/ports"
	"billing-core/pkg/apperror"
	"billing-core/pkg/response"

	"github.com/gin-gonic/gin"
)

// WalletHandler handles wallet endpoints.
type WalletHandler struct {
	orc ports.Orchestrator
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(orc ports.Orchestrator) *WalletHandler {
	return &WalletHandler{orc: orc}
}

// Create handles POST /wallet.
func (h *WalletHandler) Create(c *gin.Context) {
	var req dto.CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	wallet, err := h.orc.CreateWallet(c.Request.Context(), req.WalletID, req.AccountID, req.Currency, req.InitialBalance)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toWalletResponse(wallet))
}

// Credit handles POST /wallet/credit. The credit is recorded as a
// ledger entry like any debit.
func (h *WalletHandler) Credit(c *gin.Context) {
	var req dto.CreditWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	entry, err := h.orc.CreditWallet(c.Request.Context(), ports.CreditWalletRequest{
		AccountID: req.AccountID,
		WalletID:  req.WalletID,
		Amount:    req.Amount,
		At:        timeOrZero(req.At),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toLedgerEntryResponse(entry))
}

// Get handles GET /wallet/:walletId.
func (h *WalletHandler) Get(c *gin.Context) {
	wallet, err := h.orc.GetWallet(c.Request.Context(), c.Param("walletId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toWalletResponse(wallet))
}
