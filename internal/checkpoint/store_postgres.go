package checkpoint

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// PostgresStore persists checkpoints in the checkpoint table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) LastScannedHeight(ctx context.Context, name string) (uint64, bool, error) {
	var height int64
	err := s.db.QueryRowContext(ctx,
		`SELECT last_scanned_height FROM checkpoint WHERE name = $1`, name,
	).Scan(&height)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("query checkpoint %s: %w", name, err)
	}
	return uint64(height), true, nil
}

func (s *PostgresStore) SetLastScannedHeight(ctx context.Context, name string, height uint64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO checkpoint (name, last_scanned_height, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE
		SET last_scanned_height = EXCLUDED.last_scanned_height,
		    updated_at = EXCLUDED.updated_at
	`, name, int64(height), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("advance checkpoint %s: %w", name, err)
	}
	return nil
}
