package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrKevinOConnell/zencasterbackend/pkg/platform/sentinel"
)

// PostgresStore persists profiles in the profile table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, p Profile) error {
	var lastCastAt sql.NullTime
	if !p.LastCastAt.IsZero() {
		lastCastAt = sql.NullTime{Time: p.LastCastAt, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profile (id, owner, registered_at, cast_count, last_cast_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET owner = EXCLUDED.owner,
		    cast_count = EXCLUDED.cast_count,
		    last_cast_at = EXCLUDED.last_cast_at,
		    updated_at = EXCLUDED.updated_at
	`, int64(p.ID), p.Owner, p.RegisteredAt, p.CastCount, lastCastAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save profile %d: %w", p.ID, err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id uint64) (Profile, error) {
	var p Profile
	var rowID int64
	var lastCastAt sql.NullTime
	err := s.db.QueryRowContext(ctx, `
		SELECT id, owner, registered_at, cast_count, last_cast_at, updated_at
		FROM profile WHERE id = $1
	`, int64(id)).Scan(&rowID, &p.Owner, &p.RegisteredAt, &p.CastCount, &lastCastAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, sentinel.ErrNotFound
	}
	if err != nil {
		return Profile{}, fmt.Errorf("find profile %d: %w", id, err)
	}
	p.ID = uint64(rowID)
	if lastCastAt.Valid {
		p.LastCastAt = lastCastAt.Time
	}
	return p, nil
}
