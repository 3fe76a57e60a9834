package postgres

import (
	"context"
	"errors"
	"fmt"

	"billing-core/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// MerkleRepo implements ports.MerkleRepository over the merkle_roots
// audit snapshot table.
type MerkleRepo struct {
	pool Pool
}

// NewMerkleRepo creates a new MerkleRepo.
func NewMerkleRepo(pool Pool) *MerkleRepo {
	return &MerkleRepo{pool: pool}
}

// Insert stores an audit snapshot.
func (r *MerkleRepo) Insert(ctx context.Context, root *domain.MerkleRoot) error {
	query := `INSERT INTO merkle_roots (id, root, entry_count, taken_at) VALUES ($1, $2, $3, $4)`

	_, err := r.pool.Exec(ctx, query, root.ID, root.Root, root.EntryCount, root.TakenAt)
	if err != nil {
		return fmt.Errorf("insert merkle root: %w", err)
	}
	return nil
}

// Latest returns the most recent snapshot, or nil if none exists.
func (r *MerkleRepo) Latest(ctx context.Context) (*domain.MerkleRoot, error) {
	query := `SELECT id, root, entry_count, taken_at FROM merkle_roots ORDER BY taken_at DESC LIMIT 1`

	root := &domain.MerkleRoot{}
	err := r.pool.QueryRow(ctx, query).Scan(&root.ID, &root.Root, &root.EntryCount, &root.TakenAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get latest merkle root: %w", err)
	}
	return root, nil
}
