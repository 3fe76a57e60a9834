package postgres

import (
	"context"
	"errors"
	"fmt"

	"billing-core/internal/core/domain"
	"billing-core/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

const ledgerColumns = `entry_id, ts, account_id, wallet_id, type, amount, currency, balance_after,
	prev_hash, entry_hash, idempotency_key, source_engine, source_event_id,
	policy_id, policy_version, region, tax_region, tax_rate, tax_amount, user_explanation`

// LedgerRepo implements ports.LedgerRepository. Append order is
// tracked by a sequence column; entry_id and entry_hash carry unique
// indexes so duplicate insertion fails at the database.
type LedgerRepo struct {
	pool Pool
}

// NewLedgerRepo creates a new LedgerRepo.
func NewLedgerRepo(pool Pool) *LedgerRepo {
	return &LedgerRepo{pool: pool}
}

// Insert appends a ledger entry within a database transaction. A
// unique-violation on entry_id or entry_hash maps to duplicate_entry.
func (r *LedgerRepo) Insert(ctx context.Context, tx pgx.Tx, e *domain.LedgerEntry) error {
	query := `INSERT INTO ledger (` + ledgerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`

	var taxRegion *string
	var taxRate, taxAmount decimal.NullDecimal
	if e.Tax != nil {
		taxRegion = &e.Tax.Region
		taxRate = decimal.NewNullDecimal(e.Tax.Rate)
		taxAmount = decimal.NewNullDecimal(e.Tax.Amount)
	}

	_, err := tx.Exec(ctx, query,
		e.ID, e.Timestamp, e.AccountID, e.WalletID, e.Type, e.Amount, e.Currency, e.BalanceAfter,
		e.PrevHash, e.EntryHash, e.IdempotencyKey, e.SourceEngine, e.SourceEventID,
		e.PolicyID, e.PolicyVersion, e.Region, taxRegion, taxRate, taxAmount, e.UserExplanation,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.ErrDuplicateEntry()
		}
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

// LastHashForWallet returns the newest entry hash for a wallet, or nil
// if the wallet has no entries. Runs inside the caller's transaction.
func (r *LedgerRepo) LastHashForWallet(ctx context.Context, tx pgx.Tx, walletID string) (*string, error) {
	query := `SELECT entry_hash FROM ledger WHERE wallet_id = $1 ORDER BY seq DESC LIMIT 1`

	var hash string
	err := tx.QueryRow(ctx, query, walletID).Scan(&hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("last hash for wallet: %w", err)
	}
	return &hash, nil
}

// ListByAccount returns an account's entries in append order.
func (r *LedgerRepo) ListByAccount(ctx context.Context, accountID string) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger WHERE account_id = $1 ORDER BY seq`
	return r.list(ctx, query, accountID)
}

// ListByWallet returns a wallet's entries in append order.
func (r *LedgerRepo) ListByWallet(ctx context.Context, walletID string) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger WHERE wallet_id = $1 ORDER BY seq`
	return r.list(ctx, query, walletID)
}

// ListAll returns every entry in append order.
func (r *LedgerRepo) ListAll(ctx context.Context) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger ORDER BY seq`
	return r.list(ctx, query)
}

func (r *LedgerRepo) list(ctx context.Context, query string, args ...any) ([]domain.LedgerEntry, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		e, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger rows: %w", err)
	}
	return entries, nil
}

func scanLedgerEntry(row pgx.Row) (*domain.LedgerEntry, error) {
	e := &domain.LedgerEntry{}
	var taxRegion *string
	var taxRate, taxAmount decimal.NullDecimal
	err := row.Scan(
		&e.ID, &e.Timestamp, &e.AccountID, &e.WalletID, &e.Type, &e.Amount, &e.Currency, &e.BalanceAfter,
		&e.PrevHash, &e.EntryHash, &e.IdempotencyKey, &e.SourceEngine, &e.SourceEventID,
		&e.PolicyID, &e.PolicyVersion, &e.Region, &taxRegion, &taxRate, &taxAmount, &e.UserExplanation,
	)
	if err != nil {
		return nil, fmt.Errorf("scan ledger entry: %w", err)
	}
	if taxRegion != nil {
		e.Tax = &domain.TaxBreakdown{
			Region: *taxRegion,
			Rate:   taxRate.Decimal,
			Amount: taxAmount.Decimal,
		}
	}
	return e, nil
}
