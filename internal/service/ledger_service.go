package service

import (
	"context"
	"fmt"

	"billing-core/internal/core/domain"
	"billing-core/internal/core/ports"
	"billing-core/pkg/apperror"

	"github.com/jackc/pgx/v5"
)

// LedgerService appends hash-chained entries. Append runs inside the
// caller's transaction so the chain head read and the insert are
// serialized by the wallet row lock the caller already holds.
type LedgerService struct {
	repo ports.LedgerRepository
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(repo ports.LedgerRepository) *LedgerService {
	return &LedgerService{repo: repo}
}

// Append completes the entry's hash fields and inserts it: PrevHash
// becomes the wallet's current chain head, EntryHash the digest over
// the canonical rendering. The entry is mutated in place.
func (s *LedgerService) Append(ctx context.Context, tx pgx.Tx, entry *domain.LedgerEntry) error {
	prev, err := s.repo.LastHashForWallet(ctx, tx, entry.WalletID)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("chain head for wallet %s: %w", entry.WalletID, err))
	}
	entry.PrevHash = prev
	entry.EntryHash = entry.ComputeHash()
	return s.repo.Insert(ctx, tx, entry)
}

// EntriesForAccount returns an account's entries in append order.
func (s *LedgerService) EntriesForAccount(ctx context.Context, accountID string) ([]domain.LedgerEntry, error) {
	return s.repo.ListByAccount(ctx, accountID)
}

// All returns every ledger entry in append order.
func (s *LedgerService) All(ctx context.Context) ([]domain.LedgerEntry, error) {
	return s.repo.ListAll(ctx)
}
