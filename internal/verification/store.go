package verification

import "context"

// Store persists verifications. Upsert semantics mirror the registration
// store: identity fields are first-write-wins, verified_at is last-write-wins
// so freshness can be tracked. No delete is exposed.
type Store interface {
	Upsert(ctx context.Context, v Verification) (created bool, err error)
	ListByFID(ctx context.Context, fid uint64) ([]Verification, error)
}
