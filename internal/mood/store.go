package mood

import "context"

// Store holds the singleton aggregate. Replace swaps the whole row
// atomically: at every observation point the table has zero or one rows, and
// a reader never sees a half-written state.
type Store interface {
	// Replace clears any prior mood and installs m in one atomic step.
	Replace(ctx context.Context, m Mood) error

	// Current returns the mood, or sentinel.ErrNotFound when none has been
	// computed yet.
	Current(ctx context.Context) (Mood, error)
}
