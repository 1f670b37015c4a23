package profile

import "context"

// Store persists profile rows. Save is a whole-row upsert: the updater always
// writes a complete recomputed profile.
type Store interface {
	Save(ctx context.Context, p Profile) error
	FindByID(ctx context.Context, id uint64) (Profile, error)
}
