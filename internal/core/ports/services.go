package ports

import (
	"context"
	"time"

	"billing-core/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// Signer is the key-management capability the core needs. The backend
// (HSM, cloud KMS, local key) is chosen by a factory at the application
// boundary and injected here.
type Signer interface {
	Sign(payload []byte) (string, error)
	Verify(payload []byte, signature string) bool
}

// IdempotencyCache is the fast-path idempotency check in front of the
// durable idempotency log.
type IdempotencyCache interface {
	Get(ctx context.Context, key string) ([]byte, error) // Returns cached response JSON or nil
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// ActivityEngine prices one vertical's usage event. Pure and
// deterministic given (event, region, at, policy); policy may be nil,
// in which case the engine's reference rates apply.
type ActivityEngine func(event domain.UsageEvent, region string, at time.Time, policy *domain.Policy) (domain.ChargeBreakdown, error)

// EngineRegistry resolves activity engines by vertical name.
type EngineRegistry interface {
	Get(engine string) (ActivityEngine, error)
	Names() []string
}

// PolicyRegistry answers "what policy/offers apply at time T for scope S"
// and guards the non-retroactive ordering invariant.
type PolicyRegistry interface {
	// SignAndAdd signs the policy via the KMS signer, then registers it.
	SignAndAdd(ctx context.Context, policy *domain.Policy) (*domain.Policy, error)
	// Add registers a pre-signed policy after verifying its signature.
	Add(ctx context.Context, policy *domain.Policy) error
	Deprecate(ctx context.Context, policyID string, version int, until time.Time) error
	// GetPolicyFor returns the policy for scope whose effective window
	// contains at, preferring the latest effective_from; nil if none.
	GetPolicyFor(ctx context.Context, scope string, at time.Time) (*domain.Policy, error)
	EligibleOffers(ctx context.Context, scope string, at time.Time) ([]domain.Offer, error)
	AddOffer(ctx context.Context, offer *domain.Offer) error
	// RedeemOffers records one redemption for each applied offer, inside
	// the settlement transaction, so max_redemptions caps hold.
	RedeemOffers(ctx context.Context, tx pgx.Tx, offers []domain.Offer) error
	All(ctx context.Context) ([]domain.Policy, error)
}

// --- Orchestrator requests ---

// CreateSubscriptionRequest opens a subscription and charges the first
// full period.
type CreateSubscriptionRequest struct {
	AccountID      string
	WalletID       string
	PlanID         string
	Price          decimal.Decimal
	Region         string
	At             time.Time
	IdempotencyKey *string
	AutoRenew      bool
}

// RenewSubscriptionRequest explicitly renews; there is no silent
// auto-renewal billing.
type RenewSubscriptionRequest struct {
	AccountID      string
	At             time.Time
	IdempotencyKey *string
}

// UpgradeSubscriptionRequest switches plans mid-period. Upgrades charge
// the prorated delta now; downgrades defer to the period boundary.
type UpgradeSubscriptionRequest struct {
	AccountID      string
	WalletID       string
	NewPlanID      string
	NewPrice       decimal.Decimal
	At             time.Time
	IdempotencyKey *string
}

// RecordUsageRequest charges one usage event through its activity
// engine.
type RecordUsageRequest struct {
	AccountID      string
	WalletID       string
	Event          domain.UsageEvent
	Region         string
	At             time.Time
	IdempotencyKey *string
}

// CreditWalletRequest adds funds to a wallet and records the credit in
// the ledger.
type CreditWalletRequest struct {
	AccountID string
	WalletID  string
	Amount    decimal.Decimal
	At        time.Time
}

// UpgradeResult distinguishes an immediate prorated charge from a
// scheduled downgrade (Entry nil, Scheduled true).
type UpgradeResult struct {
	Entry        *domain.LedgerEntry
	Subscription *domain.Subscription
	Scheduled    bool
}

// Orchestrator coordinates policies, engines, wallet and ledger into
// atomic billing operations.
type Orchestrator interface {
	CalculateCharge(ctx context.Context, base decimal.Decimal, region string, at time.Time) (domain.ChargeBreakdown, error)
	CreateSubscription(ctx context.Context, req CreateSubscriptionRequest) (*domain.LedgerEntry, error)
	RenewSubscription(ctx context.Context, req RenewSubscriptionRequest) (*domain.LedgerEntry, error)
	UpgradeSubscription(ctx context.Context, req UpgradeSubscriptionRequest) (*UpgradeResult, error)
	CancelSubscription(ctx context.Context, accountID string) (*domain.Subscription, error)
	GetSubscription(ctx context.Context, accountID string) (*domain.Subscription, error)
	ApplyPeriodBoundary(ctx context.Context, accountID string, at time.Time) (*domain.Subscription, error)
	RecordUsage(ctx context.Context, req RecordUsageRequest) (*domain.LedgerEntry, error)
	CreateWallet(ctx context.Context, walletID, accountID, currency string, initial decimal.Decimal) (*domain.Wallet, error)
	CreditWallet(ctx context.Context, req CreditWalletRequest) (*domain.LedgerEntry, error)
	GetWallet(ctx context.Context, walletID string) (*domain.Wallet, error)
	LedgerForAccount(ctx context.Context, accountID string) ([]domain.LedgerEntry, error)
}

// AuditService verifies hash chains and takes merkle snapshots.
type AuditService interface {
	VerifyWalletChain(ctx context.Context, walletID string) error
	Snapshot(ctx context.Context, at time.Time) (*domain.MerkleRoot, error)
}
