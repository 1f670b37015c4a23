package registration

import "context"

// Store is the registration sink shared by the live listener and the catch-up
// reconciler. Upsert is idempotent and keyed on id: the first write for an id
// fixes its immutable fields, re-applying the same registration is a no-op,
// and concurrent writers converge to the same row. No delete is exposed.
type Store interface {
	// Upsert writes reg if its id is unseen, returning whether a new row was
	// created. For a known id only the owner may change.
	Upsert(ctx context.Context, reg Registration) (created bool, err error)

	// FindByID returns the registration for id or sentinel.ErrNotFound.
	FindByID(ctx context.Context, id uint64) (Registration, error)

	// List returns all registrations in ascending id order.
	List(ctx context.Context) ([]Registration, error)
}
