package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/MrKevinOConnell/zencasterbackend/internal/cast"
	"github.com/MrKevinOConnell/zencasterbackend/internal/checkpoint"
	"github.com/MrKevinOConnell/zencasterbackend/internal/ledger"
	"github.com/MrKevinOConnell/zencasterbackend/internal/mood"
	"github.com/MrKevinOConnell/zencasterbackend/internal/notify"
	"github.com/MrKevinOConnell/zencasterbackend/internal/platform/config"
	"github.com/MrKevinOConnell/zencasterbackend/internal/platform/httpserver"
	"github.com/MrKevinOConnell/zencasterbackend/internal/platform/logger"
	"github.com/MrKevinOConnell/zencasterbackend/internal/platform/metrics"
	"github.com/MrKevinOConnell/zencasterbackend/internal/platform/openai"
	"github.com/MrKevinOConnell/zencasterbackend/internal/platform/postgres"
	platformredis "github.com/MrKevinOConnell/zencasterbackend/internal/platform/redis"
	"github.com/MrKevinOConnell/zencasterbackend/internal/platform/tracing"
	"github.com/MrKevinOConnell/zencasterbackend/internal/profile"
	"github.com/MrKevinOConnell/zencasterbackend/internal/registration"
	"github.com/MrKevinOConnell/zencasterbackend/internal/scheduler"
	httptransport "github.com/MrKevinOConnell/zencasterbackend/internal/transport/http"
	"github.com/MrKevinOConnell/zencasterbackend/internal/verification"
)

// main wires the mirror's dependencies and supervises its long-running
// tasks: the live listener, the scheduler, and the HTTP surface. Business
// logic lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stopTracing, err := tracing.Setup(cfg.Tracing)
	if err != nil {
		log.Error("tracing setup failed", "error", err)
		os.Exit(1)
	}
	if stopTracing != nil {
		defer func() {
			if err := stopTracing(context.Background()); err != nil {
				log.Warn("tracing shutdown failed", "error", err)
			}
		}()
	}

	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		log.Error("postgres unavailable", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		log.Error("schema bootstrap failed", "error", err)
		os.Exit(1)
	}

	m := metrics.New()

	// Broadcast sinks are optional; with none configured the notifier is a
	// structured no-op and the pipelines still run.
	var sinks []notify.Sink
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis unavailable", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		sinks = append(sinks, notify.NewRedisSink(redisClient, cfg.Redis.Channel))
	}
	kafkaSink, err := notify.NewKafkaSink(cfg.Kafka)
	if err != nil {
		log.Error("kafka unavailable", "error", err)
		os.Exit(1)
	}
	if kafkaSink != nil {
		defer kafkaSink.Close()
		sinks = append(sinks, kafkaSink)
	}
	notifier := notify.NewBroadcaster(log, sinks...)

	registrations := registration.NewPostgresStore(db)
	casts := cast.NewPostgresStore(db)
	verifications := verification.NewPostgresStore(db)
	profiles := profile.NewPostgresStore(db)
	moods := mood.NewPostgresStore(db)
	checkpoints := checkpoint.NewPostgresStore(db)

	chain := ledger.NewRPCClient(cfg.Ledger, log)

	listener := registration.NewListener(chain, registrations, notifier, m, log)
	reconciler := registration.NewReconciler(chain, registrations, checkpoints,
		cfg.Ledger.DeploymentBlock, cfg.Ledger.BatchSize, m, log)

	castIndexer := cast.NewIndexer(
		cast.NewHTTPSource(cfg.Casts.URL, cfg.Casts.CallTimeout),
		casts, notifier, cfg.Casts.IndexCap, m, log)
	verificationIndexer := verification.NewIndexer(
		verification.NewHTTPSource(cfg.Casts.VerificationURL, cfg.Casts.CallTimeout),
		verifications, cfg.Casts.IndexCap, m, log)
	updater := profile.NewUpdater(registrations, casts, profiles, m, log)
	aggregator := mood.NewAggregator(casts, moods, openai.New(cfg.OpenAI), notifier, m, log)

	// Cover any downtime before going live; failures here are not fatal
	// because the scheduled re-scan below retries.
	if err := reconciler.Run(ctx); err != nil {
		log.Error("startup reconciliation failed", "error", err)
	}

	sched := scheduler.New(cfg.Schedules.RunTimeout, m, log)
	// The live watch anchors at the head it first observes, so anything mined
	// between the startup scan and that anchor lands here instead. The
	// re-scan interval is the convergence bound.
	sched.Add("reconcile-registrations", cfg.Schedules.ReconcileInterval, reconciler.Run)
	sched.Add("index-casts", cfg.Schedules.CastInterval, func(ctx context.Context) error {
		if _, err := castIndexer.Run(ctx); err != nil {
			return err
		}
		_, err := updater.Run(ctx)
		return err
	})
	sched.Add("index-verifications", cfg.Schedules.VerificationInterval, func(ctx context.Context) error {
		_, err := verificationIndexer.Run(ctx)
		return err
	})
	sched.Add("generate-mood", cfg.Schedules.MoodInterval, func(ctx context.Context) error {
		aggregator.Run(ctx)
		return nil
	})

	handler := httptransport.NewHandler(moods, profiles, db.PingContext, log)
	srv := httpserver.New(cfg.HTTP, httptransport.NewRouter(handler))

	log.Info("starting zencaster indexer", "addr", cfg.HTTP.Addr)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return listener.Run(ctx)
	})
	g.Go(func() error {
		return sched.Run(ctx)
	})
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		return srv.Shutdown(context.Background())
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("indexer stopped", "error", err)
		os.Exit(1)
	}
	log.Info("indexer shut down cleanly")
}
