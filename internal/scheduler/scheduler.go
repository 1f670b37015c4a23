package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/MrKevinOConnell/zencasterbackend/internal/platform/metrics"
)

// Job is one periodic task. Jobs are isolated from each other: an error or
// panic in one run never delays or kills another job or the process.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error

	running sync.Mutex
}

// Scheduler drives independent periodic jobs off time.Ticker loops. Each
// job run gets a context bounded by runTimeout so a stuck external call
// cannot accumulate in-flight runs; a run that is still executing when its
// next tick fires is skipped, not stacked.
type Scheduler struct {
	jobs       []*Job
	runTimeout time.Duration
	metrics    *metrics.Metrics
	log        *slog.Logger
}

func New(runTimeout time.Duration, m *metrics.Metrics, log *slog.Logger) *Scheduler {
	if runTimeout <= 0 {
		runTimeout = 2 * time.Minute
	}
	return &Scheduler{runTimeout: runTimeout, metrics: m, log: log}
}

// Add registers a job. Not safe to call after Run has started.
func (s *Scheduler) Add(name string, interval time.Duration, run func(ctx context.Context) error) {
	s.jobs = append(s.jobs, &Job{Name: name, Interval: interval, Run: run})
}

// Run blocks until ctx is cancelled, then waits for in-flight runs to finish.
func (s *Scheduler) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	for _, job := range s.jobs {
		wg.Add(1)
		go func(job *Job) {
			defer wg.Done()
			s.loop(ctx, job)
		}(job)
	}
	wg.Wait()
	return ctx.Err()
}

func (s *Scheduler) loop(ctx context.Context, job *Job) {
	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx, job)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context, job *Job) {
	if !job.running.TryLock() {
		s.log.Warn("previous run still executing, skipping tick", "job", job.Name)
		return
	}
	defer job.running.Unlock()

	runCtx, cancel := context.WithTimeout(ctx, s.runTimeout)
	defer cancel()

	start := time.Now()
	err := s.guard(runCtx, job)
	if s.metrics != nil {
		s.metrics.JobDuration.WithLabelValues(job.Name).Observe(time.Since(start).Seconds())
	}
	if err != nil {
		// The next tick retries naturally; nothing escalates.
		s.log.Error("scheduled job failed", "job", job.Name, "error", err)
	}
}

func (s *Scheduler) guard(ctx context.Context, job *Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job panicked: %v", r)
		}
	}()
	return job.Run(ctx)
}
