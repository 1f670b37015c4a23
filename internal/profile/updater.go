package profile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/MrKevinOConnell/zencasterbackend/internal/cast"
	"github.com/MrKevinOConnell/zencasterbackend/internal/platform/metrics"
	"github.com/MrKevinOConnell/zencasterbackend/internal/registration"
)

// Updater recomputes every profile row from registration and cast state. The
// pass is idempotent and safe to run concurrently with new registrations; a
// row created after the snapshot is picked up on the next tick.
type Updater struct {
	registrations registration.Store
	casts         cast.Store
	profiles      Store
	metrics       *metrics.Metrics
	log           *slog.Logger
}

func NewUpdater(registrations registration.Store, casts cast.Store, profiles Store, m *metrics.Metrics, log *slog.Logger) *Updater {
	return &Updater{
		registrations: registrations,
		casts:         casts,
		profiles:      profiles,
		metrics:       m,
		log:           log,
	}
}

// Run executes one enrichment pass and returns how many rows it refreshed.
func (u *Updater) Run(ctx context.Context) (int, error) {
	regs, err := u.registrations.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("snapshot registrations: %w", err)
	}
	stats, err := u.casts.StatsByAuthor(ctx)
	if err != nil {
		return 0, fmt.Errorf("snapshot cast stats: %w", err)
	}

	now := time.Now().UTC()
	var refreshed int
	for _, reg := range regs {
		st := stats[reg.ID]
		p := Profile{
			ID:           reg.ID,
			Owner:        reg.Owner,
			RegisteredAt: reg.RegisteredAt,
			CastCount:    st.CastCount,
			LastCastAt:   st.LastCastAt,
			UpdatedAt:    now,
		}
		if err := u.profiles.Save(ctx, p); err != nil {
			return refreshed, fmt.Errorf("refresh profile %d: %w", reg.ID, err)
		}
		refreshed++
	}

	if u.metrics != nil {
		u.metrics.ProfilesRefreshed.Add(float64(refreshed))
	}
	u.log.Debug("profile enrichment pass complete", "profiles", refreshed)
	return refreshed, nil
}
