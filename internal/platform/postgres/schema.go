package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema contains the complete DDL for the mirror tables. Every statement is
// idempotent so EnsureSchema can run on every boot.
const Schema = `
-- Registrations mirrored from the on-chain registry. registered_at keeps its
-- first observed value; owner follows transfers.
CREATE TABLE IF NOT EXISTS registration (
    id              BIGINT PRIMARY KEY,
    owner           TEXT NOT NULL,
    registered_at   TIMESTAMPTZ NOT NULL
);

-- Casts pulled from the public feed. Flags refresh on re-ingest, content is
-- first-write-wins.
CREATE TABLE IF NOT EXISTS casts (
    hash              TEXT PRIMARY KEY,
    author_id         BIGINT NOT NULL,
    text              TEXT NOT NULL,
    published_at      TIMESTAMPTZ NOT NULL,
    reply_parent_root TEXT,
    deleted           BOOLEAN NOT NULL DEFAULT FALSE,
    recast            BOOLEAN NOT NULL DEFAULT FALSE
);
CREATE INDEX IF NOT EXISTS idx_casts_author ON casts(author_id);
CREATE INDEX IF NOT EXISTS idx_casts_published ON casts(published_at DESC);

-- Address ownership claims, keyed by (fid, claim). verified_at refreshes on
-- re-verification.
CREATE TABLE IF NOT EXISTS verification (
    fid          BIGINT NOT NULL,
    claim        TEXT NOT NULL,
    verified_at  TIMESTAMPTZ NOT NULL,
    PRIMARY KEY (fid, claim)
);

-- Denormalized per-registration view, recomputed wholesale by the updater.
CREATE TABLE IF NOT EXISTS profile (
    id              BIGINT PRIMARY KEY,
    owner           TEXT NOT NULL,
    registered_at   TIMESTAMPTZ NOT NULL,
    cast_count      INTEGER NOT NULL DEFAULT 0,
    last_cast_at    TIMESTAMPTZ,
    updated_at      TIMESTAMPTZ NOT NULL
);

-- Singleton aggregate: zero rows before the first successful run, exactly one
-- after. Replaced transactionally, never updated in place.
CREATE TABLE IF NOT EXISTS mood (
    color        TEXT NOT NULL,
    description  TEXT NOT NULL
);

-- Scan cursors for the catch-up reconciler, one row per source.
CREATE TABLE IF NOT EXISTS checkpoint (
    name                 TEXT PRIMARY KEY,
    last_scanned_height  BIGINT NOT NULL,
    updated_at           TIMESTAMPTZ NOT NULL
);
`

// EnsureSchema applies the DDL. Safe to call on every start.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
