package registration

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"

	"github.com/MrKevinOConnell/zencasterbackend/internal/checkpoint"
	"github.com/MrKevinOConnell/zencasterbackend/internal/ledger"
	"github.com/MrKevinOConnell/zencasterbackend/internal/platform/metrics"
)

// checkpointName keys the reconciler's position in the checkpoint store.
const checkpointName = "id-registry"

// Reconciler re-scans registry history from the persisted checkpoint to the
// chain head and replays every Register event through the same idempotent
// upsert the live listener uses. It runs once at startup to cover downtime
// and is safe to re-run at any time: already-processed ranges produce no
// change, and a crash mid-scan resumes from the last advanced batch.
type Reconciler struct {
	client      ledger.Client
	store       Store
	checkpoints checkpoint.Store
	genesis     uint64
	batchSize   uint64
	metrics     *metrics.Metrics
	log         *slog.Logger
}

// NewReconciler builds a reconciler. genesis is the registry's deployment
// height, used when no checkpoint exists yet. batchSize bounds the span of a
// single log query and the unit of checkpoint advancement.
func NewReconciler(client ledger.Client, store Store, checkpoints checkpoint.Store, genesis, batchSize uint64, m *metrics.Metrics, log *slog.Logger) *Reconciler {
	if batchSize == 0 {
		batchSize = 2000
	}
	return &Reconciler{
		client:      client,
		store:       store,
		checkpoints: checkpoints,
		genesis:     genesis,
		batchSize:   batchSize,
		metrics:     m,
		log:         log,
	}
}

// Run performs one full catch-up pass. The checkpoint only advances past a
// batch after every upsert in it has committed, so a failure leaves the
// retried range intact.
func (r *Reconciler) Run(ctx context.Context) error {
	ctx, span := otel.Tracer("registration").Start(ctx, "reconciler.run")
	defer span.End()

	last, ok, err := r.checkpoints.LastScannedHeight(ctx, checkpointName)
	if err != nil {
		return fmt.Errorf("load checkpoint: %w", err)
	}
	from := r.genesis
	if ok && last+1 > from {
		from = last + 1
	}

	head, err := r.client.HeadHeight(ctx)
	if err != nil {
		return fmt.Errorf("fetch head height: %w", err)
	}
	if from > head {
		r.log.Info("reconciler already at head", "height", head)
		return nil
	}

	r.log.Info("reconciling registry history", "from", from, "to", head)

	var replayed int
	for start := from; start <= head; start += r.batchSize {
		end := start + r.batchSize - 1
		if end > head {
			end = head
		}

		n, err := r.reconcileRange(ctx, start, end)
		if err != nil {
			return fmt.Errorf("reconcile [%d,%d]: %w", start, end, err)
		}
		replayed += n

		if err := r.checkpoints.SetLastScannedHeight(ctx, checkpointName, end); err != nil {
			return fmt.Errorf("advance checkpoint to %d: %w", end, err)
		}
		if r.metrics != nil {
			r.metrics.CheckpointHeight.Set(float64(end))
		}
	}

	r.log.Info("reconciliation complete", "events", replayed, "head", head)
	return nil
}

// reconcileRange upserts every Register event in [from, to]. All upserts must
// commit before the caller may advance the checkpoint past the range.
func (r *Reconciler) reconcileRange(ctx context.Context, from, to uint64) (int, error) {
	events, err := r.client.FilterRegisters(ctx, from, to)
	if err != nil {
		return 0, fmt.Errorf("scan registers: %w", err)
	}

	for _, event := range events {
		created, err := r.store.Upsert(ctx, Registration{
			ID:           event.ID,
			Owner:        event.Owner,
			RegisteredAt: event.ObservedAt,
		})
		if err != nil {
			return 0, fmt.Errorf("upsert registration %d: %w", event.ID, err)
		}
		if r.metrics != nil {
			r.metrics.EventsReconciled.Inc()
			if created {
				r.metrics.RegistrationsObserved.WithLabelValues("reconciler").Inc()
			}
		}
	}
	return len(events), nil
}
