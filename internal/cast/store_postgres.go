package cast

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresStore persists casts in the casts table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Upsert(ctx context.Context, c Cast) (bool, error) {
	var parent sql.NullString
	if c.ReplyParentRoot != "" {
		parent = sql.NullString{String: c.ReplyParentRoot, Valid: true}
	}

	var inserted bool
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO casts (hash, author_id, text, published_at, reply_parent_root, deleted, recast)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (hash) DO UPDATE
		SET deleted = EXCLUDED.deleted,
		    recast = EXCLUDED.recast
		RETURNING (xmax = 0)
	`, c.Hash, int64(c.AuthorID), c.Text, c.PublishedAt, parent, c.Deleted, c.Recast).Scan(&inserted)
	if err != nil {
		return false, fmt.Errorf("upsert cast %s: %w", c.Hash, err)
	}
	return inserted, nil
}

func (s *PostgresStore) ListRecentOriginal(ctx context.Context, limit int) ([]Cast, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT hash, author_id, text, published_at, reply_parent_root, deleted, recast
		FROM casts
		WHERE reply_parent_root IS NULL
		  AND deleted = FALSE
		  AND recast = FALSE
		  AND text !~ '@[a-zA-Z0-9_]+'
		ORDER BY published_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("select recent casts: %w", err)
	}
	defer rows.Close()

	return scanCasts(rows)
}

func (s *PostgresStore) StatsByAuthor(ctx context.Context) (map[uint64]AuthorStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT author_id, COUNT(*), MAX(published_at)
		FROM casts
		WHERE deleted = FALSE
		GROUP BY author_id
	`)
	if err != nil {
		return nil, fmt.Errorf("aggregate cast stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[uint64]AuthorStats)
	for rows.Next() {
		var authorID int64
		var st AuthorStats
		if err := rows.Scan(&authorID, &st.CastCount, &st.LastCastAt); err != nil {
			return nil, fmt.Errorf("scan cast stats: %w", err)
		}
		stats[uint64(authorID)] = st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cast stats: %w", err)
	}
	return stats, nil
}

func scanCasts(rows *sql.Rows) ([]Cast, error) {
	var out []Cast
	for rows.Next() {
		var c Cast
		var authorID int64
		var parent sql.NullString
		if err := rows.Scan(&c.Hash, &authorID, &c.Text, &c.PublishedAt, &parent, &c.Deleted, &c.Recast); err != nil {
			return nil, fmt.Errorf("scan cast: %w", err)
		}
		c.AuthorID = uint64(authorID)
		c.ReplyParentRoot = parent.String
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate casts: %w", err)
	}
	return out, nil
}
