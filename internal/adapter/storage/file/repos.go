package file

import (
	"context"
	"fmt"
	"time"

	"billing-core/internal/core/domain"
	"billing-core/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct {
	s *Store
}

func (r *WalletRepo) Create(ctx context.Context, w *domain.Wallet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.Wallets[w.ID]; ok {
		return apperror.Validation(fmt.Sprintf("wallet %s already exists", w.ID))
	}
	cp := *w
	r.s.st.Wallets[w.ID] = &cp
	return r.s.persist()
}

func (r *WalletRepo) GetByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w, ok := r.s.st.Wallets[walletID]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *WalletRepo) GetByIDForUpdate(ctx context.Context, _ pgx.Tx, walletID string) (*domain.Wallet, error) {
	return r.GetByID(ctx, walletID)
}

func (r *WalletRepo) UpdateBalance(ctx context.Context, _ pgx.Tx, walletID string, balance decimal.Decimal, status domain.WalletStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w, ok := r.s.st.Wallets[walletID]
	if !ok {
		return apperror.ErrWalletNotFound()
	}
	if balance.Sign() < 0 {
		return apperror.ErrNegativeBalance()
	}
	w.Balance = balance
	w.Status = status
	w.UpdatedAt = time.Now().UTC()
	return r.s.persist()
}

// LedgerRepo implements ports.LedgerRepository.
type LedgerRepo struct {
	s *Store
}

func (r *LedgerRepo) Insert(ctx context.Context, _ pgx.Tx, entry *domain.LedgerEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.st.Entries {
		if r.s.st.Entries[i].ID == entry.ID || r.s.st.Entries[i].EntryHash == entry.EntryHash {
			return apperror.ErrDuplicateEntry()
		}
	}
	r.s.st.Entries = append(r.s.st.Entries, *entry)
	return r.s.persist()
}

func (r *LedgerRepo) LastHashForWallet(ctx context.Context, _ pgx.Tx, walletID string) (*string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := len(r.s.st.Entries) - 1; i >= 0; i-- {
		if r.s.st.Entries[i].WalletID == walletID {
			h := r.s.st.Entries[i].EntryHash
			return &h, nil
		}
	}
	return nil, nil
}

func (r *LedgerRepo) ListByAccount(ctx context.Context, accountID string) ([]domain.LedgerEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.LedgerEntry
	for _, e := range r.s.st.Entries {
		if e.AccountID == accountID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *LedgerRepo) ListByWallet(ctx context.Context, walletID string) ([]domain.LedgerEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.LedgerEntry
	for _, e := range r.s.st.Entries {
		if e.WalletID == walletID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *LedgerRepo) ListAll(ctx context.Context) ([]domain.LedgerEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]domain.LedgerEntry, len(r.s.st.Entries))
	copy(out, r.s.st.Entries)
	return out, nil
}

// SubscriptionRepo implements ports.SubscriptionStore.
type SubscriptionRepo struct {
	s *Store
}

func (r *SubscriptionRepo) Get(ctx context.Context, accountID string) (*domain.Subscription, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sub, ok := r.s.st.Subscriptions[accountID]
	if !ok {
		return nil, nil
	}
	cp := *sub
	return &cp, nil
}

func (r *SubscriptionRepo) Put(ctx context.Context, _ pgx.Tx, sub *domain.Subscription) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *sub
	r.s.st.Subscriptions[sub.AccountID] = &cp
	return r.s.persist()
}

// PolicyRepo implements ports.PolicyRepository.
type PolicyRepo struct {
	s *Store
}

func (r *PolicyRepo) InsertPolicy(ctx context.Context, p *domain.Policy) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.st.Policies {
		if r.s.st.Policies[i].ID == p.ID && r.s.st.Policies[i].Version == p.Version {
			return apperror.Validation(fmt.Sprintf("policy %s v%d already exists", p.ID, p.Version))
		}
	}
	r.s.st.Policies = append(r.s.st.Policies, *p)
	return r.s.persist()
}

func (r *PolicyRepo) SetEffectiveUntil(ctx context.Context, policyID string, version int, until time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.st.Policies {
		if r.s.st.Policies[i].ID == policyID && r.s.st.Policies[i].Version == version {
			u := until
			r.s.st.Policies[i].EffectiveUntil = &u
			return r.s.persist()
		}
	}
	return apperror.ErrPolicyNotFound()
}

func (r *PolicyRepo) PoliciesByScope(ctx context.Context, scope string) ([]domain.Policy, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Policy
	for _, p := range r.s.st.Policies {
		if p.Scope == scope {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *PolicyRepo) AllPolicies(ctx context.Context) ([]domain.Policy, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]domain.Policy, len(r.s.st.Policies))
	copy(out, r.s.st.Policies)
	return out, nil
}

func (r *PolicyRepo) MaxEffectiveFrom(ctx context.Context, scope string) (*time.Time, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var max *time.Time
	for _, p := range r.s.st.Policies {
		if p.Scope != scope {
			continue
		}
		t := p.EffectiveFrom
		if max == nil || t.After(*max) {
			max = &t
		}
	}
	return max, nil
}

func (r *PolicyRepo) InsertOffer(ctx context.Context, o *domain.Offer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.st.Offers {
		if r.s.st.Offers[i].ID == o.ID {
			return apperror.Validation(fmt.Sprintf("offer %s already exists", o.ID))
		}
	}
	r.s.st.Offers = append(r.s.st.Offers, *o)
	return r.s.persist()
}

func (r *PolicyRepo) OffersByScopes(ctx context.Context, scopes []string) ([]domain.Offer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	wanted := make(map[string]bool, len(scopes))
	for _, sc := range scopes {
		wanted[sc] = true
	}
	var out []domain.Offer
	for _, o := range r.s.st.Offers {
		if wanted[o.Scope] {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *PolicyRepo) IncrementOfferRedemptions(ctx context.Context, _ pgx.Tx, offerID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.st.Offers {
		if r.s.st.Offers[i].ID == offerID {
			r.s.st.Offers[i].Redemptions++
			return r.s.persist()
		}
	}
	return apperror.Validation(fmt.Sprintf("offer %s not found", offerID))
}

// IdempotencyRepo implements ports.IdempotencyRepository.
type IdempotencyRepo struct {
	s *Store
}

func (r *IdempotencyRepo) Create(ctx context.Context, _ pgx.Tx, rec *domain.IdempotencyRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *rec
	r.s.st.Idempotency[rec.Key] = &cp
	return r.s.persist()
}

func (r *IdempotencyRepo) Get(ctx context.Context, key string) (*domain.IdempotencyRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.st.Idempotency[key]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

// MerkleRepo implements ports.MerkleRepository.
type MerkleRepo struct {
	s *Store
}

func (r *MerkleRepo) Insert(ctx context.Context, root *domain.MerkleRoot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.st.MerkleRoots = append(r.s.st.MerkleRoots, *root)
	return r.s.persist()
}

func (r *MerkleRepo) Latest(ctx context.Context) (*domain.MerkleRoot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if len(r.s.st.MerkleRoots) == 0 {
		return nil, nil
	}
	cp := r.s.st.MerkleRoots[len(r.s.st.MerkleRoots)-1]
	return &cp, nil
}
