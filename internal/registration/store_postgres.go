package registration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrKevinOConnell/zencasterbackend/pkg/platform/sentinel"
)

// PostgresStore persists registrations. The upsert leans on ON CONFLICT so
// the listener and the reconciler can race on the same id without conflict
// errors or divergent rows.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Upsert(ctx context.Context, reg Registration) (bool, error) {
	// registered_at keeps its first observed value; owner follows transfers.
	var inserted bool
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO registration (id, owner, registered_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET owner = EXCLUDED.owner
		RETURNING (xmax = 0)
	`, int64(reg.ID), reg.Owner, reg.RegisteredAt).Scan(&inserted)
	if err != nil {
		return false, fmt.Errorf("upsert registration %d: %w", reg.ID, err)
	}
	return inserted, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id uint64) (Registration, error) {
	var reg Registration
	var rowID int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, owner, registered_at FROM registration WHERE id = $1`, int64(id),
	).Scan(&rowID, &reg.Owner, &reg.RegisteredAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Registration{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Registration{}, fmt.Errorf("find registration %d: %w", id, err)
	}
	reg.ID = uint64(rowID)
	return reg, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Registration, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, owner, registered_at FROM registration ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	var out []Registration
	for rows.Next() {
		var reg Registration
		var rowID int64
		if err := rows.Scan(&rowID, &reg.Owner, &reg.RegisteredAt); err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		reg.ID = uint64(rowID)
		out = append(out, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate registrations: %w", err)
	}
	return out, nil
}
