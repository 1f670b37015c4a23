package mood

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrKevinOConnell/zencasterbackend/pkg/platform/sentinel"
)

// PostgresStore persists the aggregate in the mood table. The delete and
// insert run in one transaction so concurrent readers see either the old row
// or the new one, never an empty table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Replace(ctx context.Context, m Mood) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin mood swap: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM mood`); err != nil {
		return fmt.Errorf("clear prior mood: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO mood (color, description) VALUES ($1, $2)`,
		m.Color, m.Description,
	); err != nil {
		return fmt.Errorf("insert mood: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit mood swap: %w", err)
	}
	return nil
}

func (s *PostgresStore) Current(ctx context.Context) (Mood, error) {
	var m Mood
	err := s.db.QueryRowContext(ctx,
		`SELECT color, description FROM mood LIMIT 1`,
	).Scan(&m.Color, &m.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return Mood{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Mood{}, fmt.Errorf("read mood: %w", err)
	}
	return m, nil
}
