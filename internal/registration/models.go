package registration

import "time"

// Registration mirrors one Register event from the identity registry. Rows
// are append-only: id and registered_at never change once observed, and owner
// only changes on a transfer.
type Registration struct {
	ID           uint64
	Owner        string
	RegisteredAt time.Time
}
