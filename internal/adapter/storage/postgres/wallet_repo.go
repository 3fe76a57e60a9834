package postgres

import (
	"context"
	"errors"
	"fmt"

	"billing-core/internal/core/domain"
	"billing-core/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

// Create inserts a new wallet into the database.
func (r *WalletRepo) Create(ctx context.Context, w *domain.Wallet) error {
	query := `INSERT INTO wallets (id, account_id, currency, balance, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		w.ID, w.AccountID, w.Currency, w.Balance, w.Status, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert wallet: %w", err)
	}
	return nil
}

// GetByID fetches a wallet by its id (without locking).
func (r *WalletRepo) GetByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	query := `SELECT id, account_id, currency, balance, status, created_at, updated_at
		FROM wallets WHERE id = $1`

	return scanWallet(r.pool.QueryRow(ctx, query, walletID))
}

// GetByIDForUpdate fetches a wallet by id with pessimistic locking.
// This MUST be called within a transaction: the row lock serializes
// concurrent writers on the same wallet.
func (r *WalletRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, walletID string) (*domain.Wallet, error) {
	query := `SELECT id, account_id, currency, balance, status, created_at, updated_at
		FROM wallets WHERE id = $1 FOR UPDATE`

	return scanWallet(tx.QueryRow(ctx, query, walletID))
}

// UpdateBalance updates a wallet's balance and status within a
// transaction. Negative balances are rejected here and by a CHECK
// constraint on the table.
func (r *WalletRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, walletID string, balance decimal.Decimal, status domain.WalletStatus) error {
	if balance.Sign() < 0 {
		return apperror.ErrNegativeBalance()
	}
	query := `UPDATE wallets SET balance = $1, status = $2, updated_at = NOW() WHERE id = $3`

	tag, err := tx.Exec(ctx, query, balance, status, walletID)
	if err != nil {
		return fmt.Errorf("update wallet balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.ErrWalletNotFound()
	}
	return nil
}

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	w := &domain.Wallet{}
	err := row.Scan(&w.ID, &w.AccountID, &w.Currency, &w.Balance, &w.Status, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan wallet: %w", err)
	}
	return w, nil
}
