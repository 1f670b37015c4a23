package cast

import "time"

// Cast is one content record, keyed by its hash. Casts arrive from the
// content source already ordered newest-first and are merged incrementally.
type Cast struct {
	Hash            string
	AuthorID        uint64
	Text            string
	PublishedAt     time.Time
	ReplyParentRoot string // empty for top-level casts
	Deleted         bool
	Recast          bool
}

// AuthorStats is the per-author rollup the profile enrichment pass consumes.
type AuthorStats struct {
	CastCount  int
	LastCastAt time.Time
}
