package checkpoint

import "context"

// Store persists the last fully processed ledger height per scanner name.
// The reconciler advances it only after every upsert in the scanned range has
// committed, so a crash never leaves acknowledged-but-unwritten history.
type Store interface {
	// LastScannedHeight returns the checkpoint for name, or (0, false, nil)
	// when no checkpoint exists yet.
	LastScannedHeight(ctx context.Context, name string) (uint64, bool, error)

	// SetLastScannedHeight records that everything up to and including
	// height has been processed for name.
	SetLastScannedHeight(ctx context.Context, name string, height uint64) error
}
