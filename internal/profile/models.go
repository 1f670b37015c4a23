package profile

import "time"

// Profile is a denormalized view over registration and cast state, keyed by
// the registration id. It carries no independent authority: the updater can
// recompute every field from its sources at any time.
type Profile struct {
	ID           uint64
	Owner        string
	RegisteredAt time.Time
	CastCount    int
	LastCastAt   time.Time // zero when the user has never cast
	UpdatedAt    time.Time
}
