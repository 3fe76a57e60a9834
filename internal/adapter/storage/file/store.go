// Package file implements the persistence ports against a single
// JSON snapshot on disk. The store rehydrates on startup and rewrites
// the snapshot after every mutation. Unlike the relational adapter,
// which delegates serialization to row locks, a transaction here holds
// one store-wide operation lock from Begin to Commit or Rollback, so a
// whole read-check-write sequence runs alone and concurrent writers
// against different wallets serialize too; it is intended for
// single-node and test deployments.
//
// The store enforces the same invariants the SQL routine guarantees:
// duplicate entry ids/hashes are rejected and a balance update below
// zero fails the operation.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"billing-core/internal/core/domain"
)

// state is the serialized snapshot layout.
type state struct {
	Wallets       map[string]*domain.Wallet            `json:"wallets"`
	Entries       []domain.LedgerEntry                 `json:"ledger"`
	Subscriptions map[string]*domain.Subscription      `json:"subscriptions"`
	Policies      []domain.Policy                      `json:"policies"`
	Offers        []domain.Offer                       `json:"offers"`
	Idempotency   map[string]*domain.IdempotencyRecord `json:"idempotency"`
	MerkleRoots   []domain.MerkleRoot                  `json:"merkle_roots"`
}

func newState() state {
	return state{
		Wallets:       make(map[string]*domain.Wallet),
		Subscriptions: make(map[string]*domain.Subscription),
		Idempotency:   make(map[string]*domain.IdempotencyRecord),
	}
}

// Store owns the snapshot and hands out per-port repository views.
// An empty path keeps the store purely in memory. mu guards the
// snapshot per repository call; opMu serializes whole transactions.
type Store struct {
	mu   sync.Mutex
	opMu sync.Mutex
	path string
	st   state
}

// New creates a Store, rehydrating from path if a snapshot exists.
func New(path string) (*Store, error) {
	s := &Store{path: path, st: newState()}
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	if err := json.Unmarshal(data, &s.st); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if s.st.Wallets == nil {
		s.st.Wallets = make(map[string]*domain.Wallet)
	}
	if s.st.Subscriptions == nil {
		s.st.Subscriptions = make(map[string]*domain.Subscription)
	}
	if s.st.Idempotency == nil {
		s.st.Idempotency = make(map[string]*domain.IdempotencyRecord)
	}
	return s, nil
}

// persist rewrites the snapshot atomically. Must be called with mu held.
func (s *Store) persist() error {
	if s.path == "" {
		return nil
	}
	data, err := json.MarshalIndent(s.st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// Repository views. Each implements one persistence port over the
// shared snapshot.

func (s *Store) Wallets() *WalletRepo             { return &WalletRepo{s: s} }
func (s *Store) Ledger() *LedgerRepo              { return &LedgerRepo{s: s} }
func (s *Store) Subscriptions() *SubscriptionRepo { return &SubscriptionRepo{s: s} }
func (s *Store) Policies() *PolicyRepo            { return &PolicyRepo{s: s} }
func (s *Store) Idempotency() *IdempotencyRepo    { return &IdempotencyRepo{s: s} }
func (s *Store) MerkleRoots() *MerkleRepo         { return &MerkleRepo{s: s} }
func (s *Store) Transactor() *Transactor          { return &Transactor{s: s} }

// Ping implements ports.HealthChecker.
func (s *Store) Ping(_ context.Context) error {
	if s.path == "" {
		return nil
	}
	_, err := os.Stat(filepath.Dir(s.path))
	return err
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string {
	return "filestore"
}
