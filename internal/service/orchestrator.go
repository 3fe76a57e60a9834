package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"billing-core/internal/core/domain"
	"billing-core/internal/core/ports"
	"billing-core/internal/metrics"
	"billing-core/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const idempotencyTTL = 24 * time.Hour

// Stacked offer percentages are capped before application, no matter
// how many offers are eligible.
var (
	maxStackedDiscountPercent = decimal.NewFromInt(22)
	hundred                   = decimal.NewFromInt(100)
)

// OrchestratorImpl implements ports.Orchestrator. Every charging
// operation runs as one transaction: wallet row lock, balance check,
// ledger append, balance update, idempotency log, commit. Any failure
// aborts the whole operation with no partial write.
type OrchestratorImpl struct {
	ledger     *LedgerService
	walletRepo ports.WalletRepository
	subStore   ports.SubscriptionStore
	policies   ports.PolicyRegistry
	engines    ports.EngineRegistry
	idempRepo  ports.IdempotencyRepository
	idempCache ports.IdempotencyCache
	transactor ports.DBTransactor
	log        zerolog.Logger
}

// NewOrchestrator creates a new OrchestratorImpl.
func NewOrchestrator(
	ledger *LedgerService,
	walletRepo ports.WalletRepository,
	subStore ports.SubscriptionStore,
	policies ports.PolicyRegistry,
	engines ports.EngineRegistry,
	idempRepo ports.IdempotencyRepository,
	idempCache ports.IdempotencyCache,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *OrchestratorImpl {
	return &OrchestratorImpl{
		ledger:     ledger,
		walletRepo: walletRepo,
		subStore:   subStore,
		policies:   policies,
		engines:    engines,
		idempRepo:  idempRepo,
		idempCache: idempCache,
		transactor: transactor,
		log:        log,
	}
}

// buildCharge applies the charge formula: region multiplier, stacked
// and capped percentage discounts, regional tax.
func (o *OrchestratorImpl) buildCharge(base decimal.Decimal, region string, offers []domain.Offer) domain.ChargeBreakdown {
	baseMultiplied := base.Mul(domain.RegionMultiplier(region))
	pct := decimal.Zero
	for _, offer := range offers {
		if offer.DiscountPercent != nil {
			pct = pct.Add(*offer.DiscountPercent)
		}
	}
	if pct.GreaterThan(maxStackedDiscountPercent) {
		pct = maxStackedDiscountPercent
	}
	discount := baseMultiplied.Mul(pct).Div(hundred)
	subtotal := baseMultiplied.Sub(discount)
	rate := domain.RegionTaxRate(region)
	tax := subtotal.Mul(rate)
	return domain.ChargeBreakdown{
		Base:            base,
		DiscountPercent: pct,
		DiscountAmount:  discount,
		Subtotal:        subtotal,
		Tax:             domain.TaxBreakdown{Region: region, Rate: rate, Amount: tax},
		Total:           subtotal.Add(tax),
	}
}

// CalculateCharge implements ports.Orchestrator. Pure: resolves the
// offers eligible for the subscription scope at the given instant and
// runs the charge formula, with no side effects.
func (o *OrchestratorImpl) CalculateCharge(ctx context.Context, base decimal.Decimal, region string, at time.Time) (domain.ChargeBreakdown, error) {
	if base.Sign() < 0 {
		return domain.ChargeBreakdown{}, apperror.Validation("base must not be negative")
	}
	offers, err := o.policies.EligibleOffers(ctx, domain.ScopeSubscription, at)
	if err != nil {
		return domain.ChargeBreakdown{}, err
	}
	charge := o.buildCharge(base, region, offers)
	charge.Description = fmt.Sprintf("charge of %s in %s", base.StringFixed(2), region)
	return charge, nil
}

// replay returns the ledger entry recorded for an idempotency key, or
// nil if the key has not been seen. Cache first, durable log second.
func (o *OrchestratorImpl) replay(ctx context.Context, key string) (*domain.LedgerEntry, error) {
	cached, err := o.idempCache.Get(ctx, key)
	if err != nil {
		o.log.Warn().Err(err).Str("key", key).Msg("cache idempotency check failed, falling through to durable log")
	}
	if cached != nil {
		metrics.IdempotentReplays.WithLabelValues("cache").Inc()
		return unmarshalCachedEntry(cached)
	}
	rec, err := o.idempRepo.Get(ctx, key)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("idempotency log check: %w", err))
	}
	if rec != nil {
		metrics.IdempotentReplays.WithLabelValues("log").Inc()
		return unmarshalCachedEntry(rec.ResponseJSON)
	}
	return nil, nil
}

func unmarshalCachedEntry(data []byte) (*domain.LedgerEntry, error) {
	entry := &domain.LedgerEntry{}
	if err := json.Unmarshal(data, entry); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("unmarshal cached entry: %w", err))
	}
	return entry, nil
}

// settleRequest is one atomic wallet movement plus its ledger entry.
type settleRequest struct {
	walletID string
	amount   decimal.Decimal
	credit   bool
	entry    *domain.LedgerEntry // Currency, BalanceAfter and hashes are filled during settlement
	idempKey *string             // full wallet-scoped key, or nil
	inTx     func(tx pgx.Tx) error
}

// settle runs the transactional core shared by every charging
// operation: lock the wallet row, check funds, append the hash-chained
// entry, update the balance, log the idempotency key, commit.
func (o *OrchestratorImpl) settle(ctx context.Context, req settleRequest) (*domain.LedgerEntry, error) {
	dbTx, err := o.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	wallet, err := o.walletRepo.GetByIDForUpdate(ctx, dbTx, req.walletID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("lock wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound()
	}
	if wallet.Status == domain.WalletStatusClosed {
		return nil, apperror.ErrWalletClosed()
	}

	var newBalance decimal.Decimal
	if req.credit {
		newBalance = wallet.Balance.Add(req.amount)
	} else {
		if req.amount.GreaterThan(wallet.Balance) {
			metrics.ChargesTotal.WithLabelValues(req.entry.Type, "rejected").Inc()
			return nil, apperror.ErrInsufficientFunds()
		}
		newBalance = wallet.Balance.Sub(req.amount)
	}

	req.entry.Currency = wallet.Currency
	req.entry.BalanceAfter = newBalance

	if err := o.ledger.Append(ctx, dbTx, req.entry); err != nil {
		return nil, err
	}
	if err := o.walletRepo.UpdateBalance(ctx, dbTx, wallet.ID, newBalance, domain.StatusForBalance(newBalance)); err != nil {
		return nil, err
	}
	if req.inTx != nil {
		if err := req.inTx(dbTx); err != nil {
			return nil, err
		}
	}

	var respJSON []byte
	if req.idempKey != nil {
		respJSON, err = json.Marshal(req.entry)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("marshal entry: %w", err))
		}
		rec := &domain.IdempotencyRecord{
			Key:          *req.idempKey,
			EntryID:      req.entry.ID,
			ResponseJSON: respJSON,
			CreatedAt:    time.Now().UTC(),
		}
		if err := o.idempRepo.Create(ctx, dbTx, rec); err != nil {
			return nil, apperror.ErrDatabaseError(fmt.Errorf("save idempotency record: %w", err))
		}
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err))
	}

	metrics.ChargesTotal.WithLabelValues(req.entry.Type, "success").Inc()
	metrics.ChargeAmount.WithLabelValues(req.entry.Type).Observe(req.amount.InexactFloat64())

	// Post-commit cache fill is best-effort.
	if req.idempKey != nil {
		if err := o.idempCache.Set(ctx, *req.idempKey, respJSON, idempotencyTTL); err != nil {
			o.log.Warn().Err(err).Str("key", *req.idempKey).Msg("failed to cache idempotency record")
		}
	}

	return req.entry, nil
}

// appliedOffers filters the offers that actually contribute to the
// discount; only those consume a redemption.
func appliedOffers(offers []domain.Offer) []domain.Offer {
	var out []domain.Offer
	for _, o := range offers {
		if o.DiscountPercent != nil && o.DiscountPercent.Sign() > 0 {
			out = append(out, o)
		}
	}
	return out
}

func fullKey(walletID string, clientKey *string) *string {
	if clientKey == nil || *clientKey == "" {
		return nil
	}
	k := domain.BuildIdempotencyKey(walletID, *clientKey)
	return &k
}

// CreateSubscription implements ports.Orchestrator.
func (o *OrchestratorImpl) CreateSubscription(ctx context.Context, req ports.CreateSubscriptionRequest) (*domain.LedgerEntry, error) {
	if req.AccountID == "" || req.WalletID == "" || req.PlanID == "" {
		return nil, apperror.Validation("account_id, wallet_id and plan_id are required")
	}
	if req.Price.Sign() < 0 {
		return nil, apperror.Validation("price must not be negative")
	}
	at := orNow(req.At)

	key := fullKey(req.WalletID, req.IdempotencyKey)
	if key != nil {
		if entry, err := o.replay(ctx, *key); err != nil || entry != nil {
			return entry, err
		}
	}

	offers, err := o.policies.EligibleOffers(ctx, domain.ScopeSubscription, at)
	if err != nil {
		return nil, err
	}
	policy, err := o.policies.GetPolicyFor(ctx, domain.ScopeSubscription, at)
	if err != nil {
		return nil, err
	}
	charge := o.buildCharge(req.Price, req.Region, offers)
	charge.Description = fmt.Sprintf("subscription signup for plan %s", req.PlanID)

	entry := o.newEntry(at, req.AccountID, req.WalletID, domain.EntryTypeSubscriptionSignup, charge, key, policy)
	sub := &domain.Subscription{
		AccountID:   req.AccountID,
		WalletID:    req.WalletID,
		PlanID:      req.PlanID,
		Price:       req.Price,
		Region:      req.Region,
		PeriodStart: at,
		PeriodEnd:   at.Add(domain.PeriodLength),
		Status:      domain.SubscriptionStatusActive,
		AutoRenew:   req.AutoRenew,
	}

	result, err := o.settle(ctx, settleRequest{
		walletID: req.WalletID,
		amount:   charge.Total,
		entry:    entry,
		idempKey: key,
		inTx: func(tx pgx.Tx) error {
			if err := o.subStore.Put(ctx, tx, sub); err != nil {
				return err
			}
			return o.policies.RedeemOffers(ctx, tx, appliedOffers(offers))
		},
	})
	if err != nil {
		return nil, err
	}

	o.log.Info().
		Str("account_id", req.AccountID).
		Str("plan_id", req.PlanID).
		Str("total", charge.Total.StringFixed(4)).
		Msg("subscription created")
	return result, nil
}

// RenewSubscription implements ports.Orchestrator. Renewal is always
// explicit; prices and offers are re-resolved at renewal time.
func (o *OrchestratorImpl) RenewSubscription(ctx context.Context, req ports.RenewSubscriptionRequest) (*domain.LedgerEntry, error) {
	sub, err := o.subStore.Get(ctx, req.AccountID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("load subscription: %w", err))
	}
	if sub == nil {
		return nil, apperror.ErrSubscriptionNotFound()
	}
	if !sub.Billable() {
		return nil, apperror.ErrSubscriptionNotActive()
	}
	at := orNow(req.At)

	key := fullKey(sub.WalletID, req.IdempotencyKey)
	if key != nil {
		if entry, err := o.replay(ctx, *key); err != nil || entry != nil {
			return entry, err
		}
	}

	offers, err := o.policies.EligibleOffers(ctx, domain.ScopeSubscription, at)
	if err != nil {
		return nil, err
	}
	policy, err := o.policies.GetPolicyFor(ctx, domain.ScopeSubscription, at)
	if err != nil {
		return nil, err
	}
	charge := o.buildCharge(sub.Price, sub.Region, offers)
	charge.Description = fmt.Sprintf("subscription renewal for plan %s", sub.PlanID)

	entry := o.newEntry(at, req.AccountID, sub.WalletID, domain.EntryTypeSubscriptionRenewal, charge, key, policy)

	result, err := o.settle(ctx, settleRequest{
		walletID: sub.WalletID,
		amount:   charge.Total,
		entry:    entry,
		idempKey: key,
		inTx: func(tx pgx.Tx) error {
			sub.PeriodStart = sub.PeriodEnd
			sub.PeriodEnd = sub.PeriodEnd.Add(domain.PeriodLength)
			if err := o.subStore.Put(ctx, tx, sub); err != nil {
				return err
			}
			return o.policies.RedeemOffers(ctx, tx, appliedOffers(offers))
		},
	})
	if err != nil {
		return nil, err
	}

	o.log.Info().
		Str("account_id", req.AccountID).
		Time("period_end", sub.PeriodEnd).
		Msg("subscription renewed")
	return result, nil
}

// UpgradeSubscription implements ports.Orchestrator. An upgrade charges
// the time-prorated price delta immediately; a downgrade is scheduled
// for the period boundary and never refunds.
func (o *OrchestratorImpl) UpgradeSubscription(ctx context.Context, req ports.UpgradeSubscriptionRequest) (*ports.UpgradeResult, error) {
	if req.NewPlanID == "" {
		return nil, apperror.Validation("new_plan_id is required")
	}
	if req.NewPrice.Sign() < 0 {
		return nil, apperror.Validation("new_price must not be negative")
	}
	sub, err := o.subStore.Get(ctx, req.AccountID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("load subscription: %w", err))
	}
	if sub == nil {
		return nil, apperror.ErrSubscriptionNotFound()
	}
	if !sub.Billable() {
		return nil, apperror.ErrSubscriptionNotActive()
	}
	at := orNow(req.At)
	if !at.Before(sub.PeriodEnd) {
		return nil, apperror.ErrPeriodAlreadyEnded()
	}

	ratio := sub.RemainingRatio(at)
	delta := req.NewPrice.Sub(sub.Price).Mul(ratio)

	if delta.Sign() <= 0 {
		// Downgrade: schedule for the boundary, charge nothing now.
		sub.PendingPlan = &req.NewPlanID
		sub.PendingPrice = &req.NewPrice
		eff := sub.PeriodEnd
		sub.PendingEffective = &eff
		sub.Status = domain.SubscriptionStatusPendingChange
		if err := o.putSubscription(ctx, sub); err != nil {
			return nil, err
		}
		o.log.Info().
			Str("account_id", req.AccountID).
			Str("pending_plan", req.NewPlanID).
			Time("effective", eff).
			Msg("downgrade scheduled for period boundary")
		return &ports.UpgradeResult{Subscription: sub, Scheduled: true}, nil
	}

	key := fullKey(sub.WalletID, req.IdempotencyKey)
	if key != nil {
		if entry, err := o.replay(ctx, *key); err != nil || entry != nil {
			return &ports.UpgradeResult{Entry: entry, Subscription: sub}, err
		}
	}

	offers, err := o.policies.EligibleOffers(ctx, domain.ScopeSubscription, at)
	if err != nil {
		return nil, err
	}
	policy, err := o.policies.GetPolicyFor(ctx, domain.ScopeSubscription, at)
	if err != nil {
		return nil, err
	}
	charge := o.buildCharge(delta, sub.Region, offers)
	charge.Description = fmt.Sprintf("prorated upgrade from plan %s to %s", sub.PlanID, req.NewPlanID)

	entry := o.newEntry(at, req.AccountID, sub.WalletID, domain.EntryTypeSubscriptionUpgrade, charge, key, policy)

	result, err := o.settle(ctx, settleRequest{
		walletID: sub.WalletID,
		amount:   charge.Total,
		entry:    entry,
		idempKey: key,
		inTx: func(tx pgx.Tx) error {
			sub.PlanID = req.NewPlanID
			sub.Price = req.NewPrice
			if err := o.subStore.Put(ctx, tx, sub); err != nil {
				return err
			}
			return o.policies.RedeemOffers(ctx, tx, appliedOffers(offers))
		},
	})
	if err != nil {
		return nil, err
	}

	o.log.Info().
		Str("account_id", req.AccountID).
		Str("plan_id", req.NewPlanID).
		Str("prorated_total", charge.Total.StringFixed(4)).
		Msg("subscription upgraded")
	return &ports.UpgradeResult{Entry: result, Subscription: sub}, nil
}

// CancelSubscription implements ports.Orchestrator. Cancellation takes
// effect at the period boundary; there is no refund.
func (o *OrchestratorImpl) CancelSubscription(ctx context.Context, accountID string) (*domain.Subscription, error) {
	sub, err := o.subStore.Get(ctx, accountID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("load subscription: %w", err))
	}
	if sub == nil {
		return nil, apperror.ErrSubscriptionNotFound()
	}
	if sub.Status == domain.SubscriptionStatusClosed {
		return nil, apperror.ErrSubscriptionNotActive()
	}
	eff := sub.PeriodEnd
	sub.Status = domain.SubscriptionStatusCanceled
	sub.CanceledEffective = &eff
	if err := o.putSubscription(ctx, sub); err != nil {
		return nil, err
	}
	o.log.Info().
		Str("account_id", accountID).
		Time("effective", eff).
		Msg("subscription canceled")
	return sub, nil
}

// GetSubscription implements ports.Orchestrator.
func (o *OrchestratorImpl) GetSubscription(ctx context.Context, accountID string) (*domain.Subscription, error) {
	sub, err := o.subStore.Get(ctx, accountID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("load subscription: %w", err))
	}
	if sub == nil {
		return nil, apperror.ErrSubscriptionNotFound()
	}
	return sub, nil
}

// ApplyPeriodBoundary implements ports.Orchestrator. Invoked by an
// external scheduler at each period rollover: finalizes a cancellation
// to closed, or applies a scheduled downgrade and opens the next
// period. Charging stays explicit via RenewSubscription.
func (o *OrchestratorImpl) ApplyPeriodBoundary(ctx context.Context, accountID string, at time.Time) (*domain.Subscription, error) {
	sub, err := o.subStore.Get(ctx, accountID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("load subscription: %w", err))
	}
	if sub == nil {
		return nil, apperror.ErrSubscriptionNotFound()
	}
	at = orNow(at)
	if at.Before(sub.PeriodEnd) {
		return nil, apperror.Validation("billing period has not ended yet")
	}

	switch sub.Status {
	case domain.SubscriptionStatusCanceled:
		sub.Status = domain.SubscriptionStatusClosed
	case domain.SubscriptionStatusPendingChange:
		if sub.PendingPlan != nil {
			sub.PlanID = *sub.PendingPlan
		}
		if sub.PendingPrice != nil {
			sub.Price = *sub.PendingPrice
		}
		sub.PendingPlan = nil
		sub.PendingPrice = nil
		sub.PendingEffective = nil
		sub.Status = domain.SubscriptionStatusActive
		sub.PeriodStart = sub.PeriodEnd
		sub.PeriodEnd = sub.PeriodEnd.Add(domain.PeriodLength)
	default:
		// Active without pending state: nothing to apply.
		return sub, nil
	}

	if err := o.putSubscription(ctx, sub); err != nil {
		return nil, err
	}
	o.log.Info().
		Str("account_id", accountID).
		Str("status", string(sub.Status)).
		Msg("period boundary applied")
	return sub, nil
}

// RecordUsage implements ports.Orchestrator.
func (o *OrchestratorImpl) RecordUsage(ctx context.Context, req ports.RecordUsageRequest) (*domain.LedgerEntry, error) {
	if req.AccountID == "" || req.WalletID == "" {
		return nil, apperror.Validation("account_id and wallet_id are required")
	}
	if req.Event.Engine == "" {
		return nil, apperror.Validation("event.engine is required")
	}
	engine, err := o.engines.Get(req.Event.Engine)
	if err != nil {
		return nil, err
	}
	at := orNow(req.At)

	key := fullKey(req.WalletID, req.IdempotencyKey)
	if key != nil {
		if entry, err := o.replay(ctx, *key); err != nil || entry != nil {
			return entry, err
		}
	}

	policy, err := o.policies.GetPolicyFor(ctx, domain.ActivityScope(req.Event.Engine), at)
	if err != nil {
		return nil, err
	}
	charge, err := engine(req.Event, req.Region, at, policy)
	if err != nil {
		return nil, err
	}

	entry := o.newEntry(at, req.AccountID, req.WalletID, domain.ActivityEntryType(req.Event.Engine), charge, key, policy)
	engineName := req.Event.Engine
	entry.SourceEngine = &engineName
	entry.SourceEventID = req.Event.EventID

	result, err := o.settle(ctx, settleRequest{
		walletID: req.WalletID,
		amount:   charge.Total,
		entry:    entry,
		idempKey: key,
	})
	if err != nil {
		return nil, err
	}

	o.log.Info().
		Str("account_id", req.AccountID).
		Str("engine", req.Event.Engine).
		Str("total", charge.Total.StringFixed(4)).
		Msg("usage charged")
	return result, nil
}

// CreateWallet implements ports.Orchestrator. A wallet opened with a
// non-positive balance starts locked.
func (o *OrchestratorImpl) CreateWallet(ctx context.Context, walletID, accountID, currency string, initial decimal.Decimal) (*domain.Wallet, error) {
	if walletID == "" || accountID == "" {
		return nil, apperror.Validation("wallet_id and account_id are required")
	}
	if currency == "" {
		return nil, apperror.Validation("currency is required")
	}
	if initial.Sign() < 0 {
		return nil, apperror.ErrNegativeBalance()
	}
	now := time.Now().UTC()
	wallet := &domain.Wallet{
		ID:        walletID,
		AccountID: accountID,
		Currency:  currency,
		Balance:   initial,
		Status:    domain.StatusForBalance(initial),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := o.walletRepo.Create(ctx, wallet); err != nil {
		return nil, err
	}
	o.log.Info().
		Str("wallet_id", walletID).
		Str("account_id", accountID).
		Str("status", string(wallet.Status)).
		Msg("wallet created")
	return wallet, nil
}

// CreditWallet implements ports.Orchestrator. The credit is recorded in
// the ledger like any other movement; a locked wallet unlocks when the
// resulting balance is positive.
func (o *OrchestratorImpl) CreditWallet(ctx context.Context, req ports.CreditWalletRequest) (*domain.LedgerEntry, error) {
	if req.Amount.Sign() <= 0 {
		return nil, apperror.Validation("amount must be positive")
	}
	at := orNow(req.At)
	desc := fmt.Sprintf("wallet credit of %s", req.Amount.StringFixed(2))
	entry := &domain.LedgerEntry{
		ID:              uuid.New(),
		Timestamp:       at,
		AccountID:       req.AccountID,
		WalletID:        req.WalletID,
		Type:            domain.EntryTypeWalletCredit,
		Amount:          req.Amount,
		UserExplanation: &desc,
	}
	result, err := o.settle(ctx, settleRequest{
		walletID: req.WalletID,
		amount:   req.Amount,
		credit:   true,
		entry:    entry,
	})
	if err != nil {
		return nil, err
	}
	o.log.Info().
		Str("wallet_id", req.WalletID).
		Str("amount", req.Amount.StringFixed(4)).
		Msg("wallet credited")
	return result, nil
}

// GetWallet implements ports.Orchestrator.
func (o *OrchestratorImpl) GetWallet(ctx context.Context, walletID string) (*domain.Wallet, error) {
	wallet, err := o.walletRepo.GetByID(ctx, walletID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("load wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound()
	}
	return wallet, nil
}

// LedgerForAccount implements ports.Orchestrator.
func (o *OrchestratorImpl) LedgerForAccount(ctx context.Context, accountID string) ([]domain.LedgerEntry, error) {
	return o.ledger.EntriesForAccount(ctx, accountID)
}

// newEntry builds the ledger entry for a charge; hashes and balance
// are filled during settlement.
func (o *OrchestratorImpl) newEntry(at time.Time, accountID, walletID, entryType string, charge domain.ChargeBreakdown, key *string, policy *domain.Policy) *domain.LedgerEntry {
	region := charge.Tax.Region
	tax := charge.Tax
	desc := charge.Description
	entry := &domain.LedgerEntry{
		ID:              uuid.New(),
		Timestamp:       at,
		AccountID:       accountID,
		WalletID:        walletID,
		Type:            entryType,
		Amount:          charge.Total,
		IdempotencyKey:  key,
		Region:          &region,
		Tax:             &tax,
		UserExplanation: &desc,
	}
	if policy != nil {
		pid := policy.ID
		ver := policy.Version
		entry.PolicyID = &pid
		entry.PolicyVersion = &ver
	}
	return entry
}

// putSubscription persists a subscription mutation that carries no
// wallet movement.
func (o *OrchestratorImpl) putSubscription(ctx context.Context, sub *domain.Subscription) error {
	dbTx, err := o.transactor.Begin(ctx)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck
	if err := o.subStore.Put(ctx, dbTx, sub); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("save subscription: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err))
	}
	return nil
}

func orNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t.UTC()
}
