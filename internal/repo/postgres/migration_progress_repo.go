package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// MigrationProgressRepo persists per-kind completion markers for the
// legacy import so an interrupted run can resume from the first
// incomplete kind instead of re-inserting migrated records.
type MigrationProgressRepo struct {
	pool *pgxpool.Pool
}

func NewMigrationProgressRepo(pool *pgxpool.Pool) *MigrationProgressRepo {
	return &MigrationProgressRepo{pool: pool}
}

func (r *MigrationProgressRepo) IsDone(ctx context.Context, kind string) (bool, error) {
	if r.pool == nil {
		return false, fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(kind) == "" {
		return false, fmt.Errorf("migration kind is required")
	}

	var done bool
	err := r.pool.QueryRow(ctx, `
SELECT EXISTS (SELECT 1 FROM migration_progress WHERE kind = $1)
`, kind).Scan(&done)
	if err != nil {
		return false, fmt.Errorf("check migration progress: %w", err)
	}

	return done, nil
}

func (r *MigrationProgressRepo) MarkDone(ctx context.Context, kind string) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(kind) == "" {
		return fmt.Errorf("migration kind is required")
	}

	if _, err := r.pool.Exec(ctx, `
INSERT INTO migration_progress (kind, completed_at)
VALUES ($1, NOW())
ON CONFLICT (kind) DO NOTHING
`, kind); err != nil {
		return fmt.Errorf("mark migration kind done: %w", err)
	}

	return nil
}
