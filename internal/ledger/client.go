package ledger

import (
	"context"
	"time"
)

// RegisterEvent is the one registry event this system consumes. The contract
// emits it when an identity id is assigned to an owner address.
type RegisterEvent struct {
	ID         uint64
	Owner      string
	Height     uint64
	ObservedAt time.Time
}

// Client is the ledger collaborator contract. The live subscription and the
// historical scan are served by the same client so the listener and the
// reconciler see a consistent event stream.
type Client interface {
	// HeadHeight returns the current chain head.
	HeadHeight(ctx context.Context) (uint64, error)

	// FilterRegisters returns every Register event in [from, to], both bounds
	// inclusive, in ascending height order.
	FilterRegisters(ctx context.Context, from, to uint64) ([]RegisterEvent, error)

	// WatchRegisters delivers new Register events to sink until ctx is
	// cancelled. Delivery is at-least-once; duplicates and reordering
	// relative to FilterRegisters are possible.
	WatchRegisters(ctx context.Context, sink chan<- RegisterEvent) error
}
