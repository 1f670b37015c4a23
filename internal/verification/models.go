package verification

import "time"

// Verification links a registration to an external ownership claim. Rows are
// keyed by (fid, claim); verified_at refreshes on re-verification.
type Verification struct {
	FID        uint64
	Claim      string
	VerifiedAt time.Time
}
