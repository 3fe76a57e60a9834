package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WalletStatus is the lifecycle state of a wallet.
type WalletStatus string

const (
	WalletStatusActive WalletStatus = "active"
	WalletStatusLocked WalletStatus = "locked"
	WalletStatusClosed WalletStatus = "closed"
)

// Wallet holds one account's spendable balance. Balance never goes
// negative; a wallet is locked whenever its balance is <= 0 and
// returns to active on a credit that makes it positive.
type Wallet struct {
	ID        string          `json:"wallet_id"`
	AccountID string          `json:"account_id"`
	Currency  string          `json:"currency"`
	Balance   decimal.Decimal `json:"balance"`
	Status    WalletStatus    `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// StatusForBalance returns the status a non-closed wallet must carry
// for the given balance.
func StatusForBalance(balance decimal.Decimal) WalletStatus {
	if balance.Sign() <= 0 {
		return WalletStatusLocked
	}
	return WalletStatusActive
}
