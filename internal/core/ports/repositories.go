package ports

import (
	"context"
	"time"

	"billing-core/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// WalletRepository defines persistence operations for wallets.
// Methods accepting pgx.Tx run inside transaction blocks and take the
// row lock that serializes concurrent writers on the same wallet.
type WalletRepository interface {
	Create(ctx context.Context, wallet *domain.Wallet) error
	GetByID(ctx context.Context, walletID string) (*domain.Wallet, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, walletID string) (*domain.Wallet, error)
	UpdateBalance(ctx context.Context, tx pgx.Tx, walletID string, balance decimal.Decimal, status domain.WalletStatus) error
}

// LedgerRepository defines persistence for the append-only ledger.
// Insert must reject entries whose id or hash already exists with
// apperror.ErrDuplicateEntry.
type LedgerRepository interface {
	Insert(ctx context.Context, tx pgx.Tx, entry *domain.LedgerEntry) error
	// LastHashForWallet returns the newest entry hash for a wallet, or
	// nil if the wallet has no entries. Called with the wallet row lock
	// held, inside the same transaction as the subsequent Insert.
	LastHashForWallet(ctx context.Context, tx pgx.Tx, walletID string) (*string, error)
	ListByAccount(ctx context.Context, accountID string) ([]domain.LedgerEntry, error)
	// ListByWallet returns a wallet's entries in append order.
	ListByWallet(ctx context.Context, walletID string) ([]domain.LedgerEntry, error)
	ListAll(ctx context.Context) ([]domain.LedgerEntry, error)
}

// SubscriptionStore defines persistence for subscription records.
// Put upserts the whole record.
type SubscriptionStore interface {
	Get(ctx context.Context, accountID string) (*domain.Subscription, error)
	Put(ctx context.Context, tx pgx.Tx, sub *domain.Subscription) error
}

// PolicyRepository defines persistence for policies and offers.
// Policies are append-only apart from SetEffectiveUntil.
type PolicyRepository interface {
	InsertPolicy(ctx context.Context, policy *domain.Policy) error
	// SetEffectiveUntil deprecates a policy version. Returns
	// apperror.ErrPolicyNotFound if no such policy/version exists.
	SetEffectiveUntil(ctx context.Context, policyID string, version int, until time.Time) error
	PoliciesByScope(ctx context.Context, scope string) ([]domain.Policy, error)
	AllPolicies(ctx context.Context) ([]domain.Policy, error)
	// MaxEffectiveFrom returns the latest effective_from among a
	// scope's policies, or nil if the scope has none.
	MaxEffectiveFrom(ctx context.Context, scope string) (*time.Time, error)
	InsertOffer(ctx context.Context, offer *domain.Offer) error
	OffersByScopes(ctx context.Context, scopes []string) ([]domain.Offer, error)
	// IncrementOfferRedemptions counts one redemption against an offer,
	// inside the settlement transaction that applied it.
	IncrementOfferRedemptions(ctx context.Context, tx pgx.Tx, offerID string) error
}

// IdempotencyRepository defines persistence for idempotency records
// (durable layer behind the cache fast path).
type IdempotencyRepository interface {
	Create(ctx context.Context, tx pgx.Tx, rec *domain.IdempotencyRecord) error
	Get(ctx context.Context, key string) (*domain.IdempotencyRecord, error)
}

// MerkleRepository defines persistence for audit snapshots.
type MerkleRepository interface {
	Insert(ctx context.Context, root *domain.MerkleRoot) error
	Latest(ctx context.Context) (*domain.MerkleRoot, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
