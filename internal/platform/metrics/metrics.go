package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics shared across the indexer's pipelines.
// Per-component values are labeled rather than split into per-package
// registries so dashboards can group them.
type Metrics struct {
	RegistrationsObserved *prometheus.CounterVec
	EventsReconciled      prometheus.Counter
	CheckpointHeight      prometheus.Gauge
	CastsIndexed          prometheus.Counter
	VerificationsIndexed  prometheus.Counter
	ProfilesRefreshed     prometheus.Counter
	MoodRuns              *prometheus.CounterVec
	BroadcastsSent        *prometheus.CounterVec
	JobDuration           *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		RegistrationsObserved: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "zencaster_registrations_observed_total",
			Help: "Registrations upserted, labeled by the path that observed them",
		}, []string{"source"}),
		EventsReconciled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "zencaster_register_events_reconciled_total",
			Help: "Register events processed by the catch-up reconciler",
		}),
		CheckpointHeight: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "zencaster_checkpoint_height",
			Help: "Last fully reconciled ledger height",
		}),
		CastsIndexed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "zencaster_casts_indexed_total",
			Help: "Casts merged by the content indexer",
		}),
		VerificationsIndexed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "zencaster_verifications_indexed_total",
			Help: "Verification records merged by the verification indexer",
		}),
		ProfilesRefreshed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "zencaster_profiles_refreshed_total",
			Help: "Profile rows recomputed by the enrichment pass",
		}),
		MoodRuns: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "zencaster_mood_runs_total",
			Help: "Mood aggregator runs, labeled by outcome",
		}, []string{"outcome"}),
		BroadcastsSent: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "zencaster_broadcasts_sent_total",
			Help: "Change notifications published, labeled by event name",
		}, []string{"event"}),
		JobDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "zencaster_job_duration_seconds",
			Help:    "Scheduled job run duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 60, 120},
		}, []string{"job"}),
	}
}
