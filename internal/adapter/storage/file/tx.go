package file

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Transactor satisfies ports.DBTransactor for the file store. The
// relational adapter serializes writers with row locks; here Begin
// takes the store-wide operation lock and holds it until Commit or
// Rollback, so a settlement's read, funds check and writes cannot
// interleave with another transaction's.
type Transactor struct {
	s *Store
}

func (t *Transactor) Begin(ctx context.Context) (pgx.Tx, error) {
	t.s.opMu.Lock()
	return &storeTx{s: t.s}, nil
}

// storeTx holds the operation lock. Repository calls under it still
// take the snapshot mutex per call. Commit and Rollback both release;
// the second call is a no-op so a deferred Rollback after Commit
// stays safe.
type storeTx struct {
	noopTx
	s    *Store
	once sync.Once
}

func (t *storeTx) Commit(ctx context.Context) error   { t.release(); return nil }
func (t *storeTx) Rollback(ctx context.Context) error { t.release(); return nil }

func (t *storeTx) release() {
	t.once.Do(func() { t.s.opMu.Unlock() })
}

// noopTx is a do-nothing pgx.Tx base for storeTx; repositories ignore
// their tx argument.
type noopTx struct{}

func (noopTx) Begin(ctx context.Context) (pgx.Tx, error) { return noopTx{}, nil }
func (noopTx) Commit(ctx context.Context) error          { return nil }
func (noopTx) Rollback(ctx context.Context) error        { return nil }

func (noopTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}

func (noopTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (noopTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }

func (noopTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}

func (noopTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (noopTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (noopTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (noopTx) Conn() *pgx.Conn                                               { return nil }
