package cast

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MrKevinOConnell/zencasterbackend/internal/notify"
	"github.com/MrKevinOConnell/zencasterbackend/internal/platform/metrics"
)

// Indexer merges new casts from the content source on each tick. Work per
// tick is bounded by cap: sources with a deeper backlog drain across ticks,
// which is the eventual-completeness contract.
type Indexer struct {
	source   Source
	store    Store
	notifier notify.Notifier
	cap      int
	metrics  *metrics.Metrics
	log      *slog.Logger
}

func NewIndexer(source Source, store Store, notifier notify.Notifier, cap int, m *metrics.Metrics, log *slog.Logger) *Indexer {
	if cap <= 0 {
		cap = 10_000
	}
	return &Indexer{
		source:   source,
		store:    store,
		notifier: notifier,
		cap:      cap,
		metrics:  m,
		log:      log,
	}
}

// Run executes one tick and returns how many previously unseen casts merged.
// A broadcast goes out only when at least one cast was new.
func (i *Indexer) Run(ctx context.Context) (int, error) {
	casts, err := i.source.FetchNew(ctx, i.cap)
	if err != nil {
		return 0, fmt.Errorf("fetch new casts: %w", err)
	}
	if len(casts) > i.cap {
		casts = casts[:i.cap]
	}

	var merged int
	var mergeErr error
	for _, c := range casts {
		created, err := i.store.Upsert(ctx, c)
		if err != nil {
			mergeErr = fmt.Errorf("merge cast %s: %w", c.Hash, err)
			break
		}
		if created {
			merged++
		}
	}

	// Casts committed before a mid-tick failure are already visible, so the
	// broadcast still goes out; later ticks would see them as not-new and
	// never fire it.
	if merged > 0 {
		if i.metrics != nil {
			i.metrics.CastsIndexed.Add(float64(merged))
		}
		i.log.Info("merged new casts", "count", merged)
		if i.notifier != nil {
			i.notifier.Broadcast(ctx, notify.EventCastsUpdate, map[string]any{"count": merged})
			if i.metrics != nil {
				i.metrics.BroadcastsSent.WithLabelValues(notify.EventCastsUpdate).Inc()
			}
		}
	}
	return merged, mergeErr
}
