package registration

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/MrKevinOConnell/zencasterbackend/internal/ledger"
	"github.com/MrKevinOConnell/zencasterbackend/internal/notify"
	"github.com/MrKevinOConnell/zencasterbackend/internal/platform/metrics"
)

// Listener consumes live Register events. Delivery is decoupled from
// processing through a bounded queue: the ledger subscription feeds it, and a
// consumer task drains it into the store. A full queue blocks the feeder,
// which is the backpressure we want against a slow store.
type Listener struct {
	client   ledger.Client
	store    Store
	notifier notify.Notifier
	metrics  *metrics.Metrics
	log      *slog.Logger
	queue    chan ledger.RegisterEvent
}

// NewListener builds a listener with a bounded delivery queue.
func NewListener(client ledger.Client, store Store, notifier notify.Notifier, m *metrics.Metrics, log *slog.Logger) *Listener {
	return &Listener{
		client:   client,
		store:    store,
		notifier: notifier,
		metrics:  m,
		log:      log,
		queue:    make(chan ledger.RegisterEvent, 256),
	}
}

// Run blocks until ctx is cancelled, keeping the subscription and the
// consumer in lockstep: if either side stops, both do.
func (l *Listener) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return l.client.WatchRegisters(ctx, l.queue)
	})
	g.Go(func() error {
		return l.consume(ctx)
	})

	return g.Wait()
}

func (l *Listener) consume(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-l.queue:
			l.handle(ctx, event)
		}
	}
}

// handle performs one idempotent upsert. Write failures are logged and
// dropped: re-delivery or the next reconciler pass repairs the gap.
func (l *Listener) handle(ctx context.Context, event ledger.RegisterEvent) {
	created, err := l.store.Upsert(ctx, Registration{
		ID:           event.ID,
		Owner:        event.Owner,
		RegisteredAt: event.ObservedAt,
	})
	if err != nil {
		l.log.Error("live registration upsert failed", "id", event.ID, "error", err)
		return
	}
	if !created {
		return
	}

	l.log.Info("new user registered", "id", event.ID, "owner", event.Owner)
	if l.metrics != nil {
		l.metrics.RegistrationsObserved.WithLabelValues("listener").Inc()
	}
	if l.notifier != nil {
		l.notifier.Broadcast(ctx, notify.EventRegistrationsUpdate, map[string]any{"id": event.ID})
		if l.metrics != nil {
			l.metrics.BroadcastsSent.WithLabelValues(notify.EventRegistrationsUpdate).Inc()
		}
	}
}
