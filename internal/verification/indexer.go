package verification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MrKevinOConnell/zencasterbackend/internal/platform/metrics"
)

// Indexer merges verification records on the hourly tick, with the same
// bounded-work contract as the cast indexer.
type Indexer struct {
	source  Source
	store   Store
	cap     int
	metrics *metrics.Metrics
	log     *slog.Logger
}

func NewIndexer(source Source, store Store, cap int, m *metrics.Metrics, log *slog.Logger) *Indexer {
	if cap <= 0 {
		cap = 10_000
	}
	return &Indexer{source: source, store: store, cap: cap, metrics: m, log: log}
}

// Run executes one tick and returns how many previously unseen verifications
// merged.
func (i *Indexer) Run(ctx context.Context) (int, error) {
	records, err := i.source.FetchNew(ctx, i.cap)
	if err != nil {
		return 0, fmt.Errorf("fetch new verifications: %w", err)
	}
	if len(records) > i.cap {
		records = records[:i.cap]
	}

	var merged int
	for _, v := range records {
		created, err := i.store.Upsert(ctx, v)
		if err != nil {
			return merged, fmt.Errorf("merge verification %d/%s: %w", v.FID, v.Claim, err)
		}
		if created {
			merged++
		}
	}

	if merged > 0 {
		if i.metrics != nil {
			i.metrics.VerificationsIndexed.Add(float64(merged))
		}
		i.log.Info("merged new verifications", "count", merged)
	}
	return merged, nil
}
