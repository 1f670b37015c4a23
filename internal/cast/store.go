package cast

import "context"

// Store persists casts. Upsert is idempotent on hash so overlapping indexer
// windows merge harmlessly.
type Store interface {
	// Upsert writes c, returning whether a new row was created. A known hash
	// refreshes the mutable flags (deleted, recast).
	Upsert(ctx context.Context, c Cast) (created bool, err error)

	// ListRecentOriginal returns up to limit casts ordered by publish time
	// descending, excluding replies, deleted casts, recasts, and casts whose
	// text matches the mention pattern. This is the mood selection query.
	ListRecentOriginal(ctx context.Context, limit int) ([]Cast, error)

	// StatsByAuthor returns per-author cast counts and latest publish times,
	// excluding deleted casts.
	StatsByAuthor(ctx context.Context) (map[uint64]AuthorStats, error)
}
