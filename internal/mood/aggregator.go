package mood

import (
	"context"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"

	"github.com/MrKevinOConnell/zencasterbackend/internal/cast"
	"github.com/MrKevinOConnell/zencasterbackend/internal/notify"
	"github.com/MrKevinOConnell/zencasterbackend/internal/platform/metrics"
	"github.com/MrKevinOConnell/zencasterbackend/internal/platform/openai"
)

// Decoding parameters are held constant across runs so the output format
// stays parseable.
const (
	sampleSize  = 8
	temperature = 0.65
	maxTokens   = 30
)

// Aggregator recomputes the mood singleton from a sample of recent casts.
// Every failure mode (selection, generation, parse, swap) is caught and
// logged as "no update this cycle"; nothing propagates to the scheduler.
type Aggregator struct {
	casts     cast.Store
	store     Store
	generator openai.Generator
	notifier  notify.Notifier
	metrics   *metrics.Metrics
	log       *slog.Logger

	// runMu makes runs single-flight: the delete-then-insert swap is the one
	// non-commutative write in the system, so overlapping runs are skipped
	// rather than interleaved.
	runMu sync.Mutex
}

func NewAggregator(casts cast.Store, store Store, generator openai.Generator, notifier notify.Notifier, m *metrics.Metrics, log *slog.Logger) *Aggregator {
	return &Aggregator{
		casts:     casts,
		store:     store,
		generator: generator,
		notifier:  notifier,
		metrics:   m,
		log:       log,
	}
}

// Run performs one aggregation cycle and reports whether the mood changed.
// The caller uses the result to gate the mood-update broadcast.
func (a *Aggregator) Run(ctx context.Context) bool {
	if !a.runMu.TryLock() {
		a.log.Warn("mood run still in flight, skipping")
		a.observe("skipped")
		return false
	}
	defer a.runMu.Unlock()

	ctx, span := otel.Tracer("mood").Start(ctx, "aggregator.run")
	defer span.End()

	selected, err := a.casts.ListRecentOriginal(ctx, sampleSize)
	if err != nil {
		a.log.Error("mood selection query failed", "error", err)
		a.observe("selection_error")
		return false
	}
	if len(selected) == 0 {
		a.log.Info("no casts eligible for mood sample")
		a.observe("empty_sample")
		return false
	}

	generated, err := a.generator.Generate(ctx, BuildPrompt(selected), temperature, maxTokens)
	if err != nil {
		a.log.Error("mood generation failed", "error", err)
		a.observe("generation_error")
		return false
	}

	m, ok := Parse(generated)
	if !ok {
		// Expected outcome when the model wanders off format, not an error.
		a.log.Info("generated text had no parseable mood", "text", generated)
		a.observe("no_signal")
		return false
	}

	if err := a.store.Replace(ctx, m); err != nil {
		a.log.Error("mood swap failed", "error", err)
		a.observe("swap_error")
		return false
	}

	a.log.Info("mood updated", "color", m.Color, "description", m.Description)
	a.observe("updated")

	if a.notifier != nil {
		a.notifier.Broadcast(ctx, notify.EventMoodUpdate, map[string]any{"color": m.Color})
		if a.metrics != nil {
			a.metrics.BroadcastsSent.WithLabelValues(notify.EventMoodUpdate).Inc()
		}
	}
	return true
}

func (a *Aggregator) observe(outcome string) {
	if a.metrics != nil {
		a.metrics.MoodRuns.WithLabelValues(outcome).Inc()
	}
}
