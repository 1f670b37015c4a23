package verification

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresStore persists verifications in the verification table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Upsert(ctx context.Context, v Verification) (bool, error) {
	var inserted bool
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO verification (fid, claim, verified_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (fid, claim) DO UPDATE SET verified_at = EXCLUDED.verified_at
		RETURNING (xmax = 0)
	`, int64(v.FID), v.Claim, v.VerifiedAt).Scan(&inserted)
	if err != nil {
		return false, fmt.Errorf("upsert verification %d/%s: %w", v.FID, v.Claim, err)
	}
	return inserted, nil
}

func (s *PostgresStore) ListByFID(ctx context.Context, fid uint64) ([]Verification, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT fid, claim, verified_at FROM verification WHERE fid = $1 ORDER BY claim`, int64(fid))
	if err != nil {
		return nil, fmt.Errorf("list verifications for %d: %w", fid, err)
	}
	defer rows.Close()

	var out []Verification
	for rows.Next() {
		var v Verification
		var rowFID int64
		if err := rows.Scan(&rowFID, &v.Claim, &v.VerifiedAt); err != nil {
			return nil, fmt.Errorf("scan verification: %w", err)
		}
		v.FID = uint64(rowFID)
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate verifications: %w", err)
	}
	return out, nil
}
