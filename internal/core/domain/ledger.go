package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Entry types for subscription lifecycle events. Usage-based entries
// use ActivityEntryType(engine).
const (
	EntryTypeSubscriptionSignup  = "subscription_signup"
	EntryTypeSubscriptionRenewal = "subscription_renewal"
	EntryTypeSubscriptionUpgrade = "subscription_upgrade"
	EntryTypeWalletCredit        = "wallet_credit"
)

// ActivityEntryType returns the ledger entry type for a usage charge
// produced by the named activity engine.
func ActivityEntryType(engine string) string {
	return "activity_" + engine
}

// TaxBreakdown records the tax component of a charge.
type TaxBreakdown struct {
	Region string          `json:"region"`
	Rate   decimal.Decimal `json:"rate"`
	Amount decimal.Decimal `json:"amount"`
}

// LedgerEntry is one immutable, hash-linked record of a monetary event
// against a wallet. PrevHash is the EntryHash of the most recent prior
// entry for the same wallet (nil for the first), forming a per-wallet
// hash chain.
type LedgerEntry struct {
	ID              uuid.UUID       `json:"entry_id"`
	Timestamp       time.Time       `json:"timestamp"`
	AccountID       string          `json:"account_id"`
	WalletID        string          `json:"wallet_id"`
	Type            string          `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	BalanceAfter    decimal.Decimal `json:"balance_after"`
	PrevHash        *string         `json:"prev_hash"`
	EntryHash       string          `json:"entry_hash"`
	IdempotencyKey  *string         `json:"idempotency_key,omitempty"`
	SourceEngine    *string         `json:"source_engine,omitempty"`
	SourceEventID   *string         `json:"source_event_id,omitempty"`
	PolicyID        *string         `json:"policy_id,omitempty"`
	PolicyVersion   *int            `json:"policy_version,omitempty"`
	Region          *string         `json:"region,omitempty"`
	Tax             *TaxBreakdown   `json:"tax,omitempty"`
	UserExplanation *string         `json:"user_explanation,omitempty"`
}

// CanonicalString renders the entry as the exact byte sequence the hash
// is computed over. This is a cross-system contract: any implementation
// that verifies chains must reproduce it byte-for-byte.
//
// Rules:
//   - fields joined by "|" in the order below, EntryHash excluded
//   - decimals rendered with exactly 4 fraction digits
//   - timestamps rendered as RFC3339 in UTC
//   - absent optional fields rendered as the empty string
//   - tax rendered as region:rate:amount with the rules above
func (e *LedgerEntry) CanonicalString() string {
	fields := []string{
		e.ID.String(),
		e.Timestamp.UTC().Format(time.RFC3339),
		e.AccountID,
		e.WalletID,
		e.Type,
		e.Amount.StringFixed(4),
		e.Currency,
		e.BalanceAfter.StringFixed(4),
		strOrEmpty(e.PrevHash),
		strOrEmpty(e.IdempotencyKey),
		strOrEmpty(e.SourceEngine),
		strOrEmpty(e.SourceEventID),
		strOrEmpty(e.PolicyID),
		intOrEmpty(e.PolicyVersion),
		strOrEmpty(e.Region),
		taxOrEmpty(e.Tax),
		strOrEmpty(e.UserExplanation),
	}
	return strings.Join(fields, "|")
}

// ComputeHash returns the hex-encoded SHA-256 digest of the canonical
// rendering. It does not mutate the entry.
func (e *LedgerEntry) ComputeHash() string {
	sum := sha256.Sum256([]byte(e.CanonicalString()))
	return hex.EncodeToString(sum[:])
}

// VerifyHash recomputes the hash from the entry's fields and compares
// it to the stored EntryHash.
func (e *LedgerEntry) VerifyHash() bool {
	return e.EntryHash == e.ComputeHash()
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intOrEmpty(i *int) string {
	if i == nil {
		return ""
	}
	return strconv.Itoa(*i)
}

func taxOrEmpty(t *TaxBreakdown) string {
	if t == nil {
		return ""
	}
	return t.Region + ":" + t.Rate.StringFixed(4) + ":" + t.Amount.StringFixed(4)
}
