// Package scheduler runs the periodic sync and revenue jobs.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"property-revenue-sync/internal/pkg/errs"
	"property-revenue-sync/internal/pkg/sanitize"
)

type Job struct {
	Name       string
	Interval   time.Duration
	RunOnStart bool
	Run        func(ctx context.Context) error
}

// Runner ticks each job on its own goroutine. A job that fails or panics is logged; the next
// tick runs it again. Ticks that pile up behind a slow run collapse into one.
type Runner struct {
	jobs   []Job
	logger *slog.Logger

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewRunner(logger *slog.Logger, jobs ...Job) *Runner {
	return &Runner{
		jobs:   jobs,
		logger: logger.With(slog.String("component", "scheduler")),
	}
}

func (r *Runner) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.running = true

	for _, job := range r.jobs {
		if job.Interval <= 0 {
			r.logger.Warn("job skipped, no interval", "job", job.Name)
			continue
		}
		r.wg.Add(1)
		go r.loop(ctx, job)
	}
	r.logger.Info("scheduler started", "jobs", len(r.jobs))
}

// Stop cancels in-flight runs and waits for the job goroutines to exit or ctx to expire.
func (r *Runner) Stop(ctx context.Context) error {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return nil
	}
	r.running = false
	r.cancel()
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return errs.Wrap(ctx.Err(), "scheduler stop")
	}
}

func (r *Runner) loop(ctx context.Context, job Job) {
	defer r.wg.Done()

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	r.logger.Info("job scheduled", "job", job.Name, "interval", job.Interval, "run_on_start", job.RunOnStart)
	if job.RunOnStart {
		r.execute(ctx, job)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.execute(ctx, job)
		}
	}
}

func (r *Runner) execute(ctx context.Context, job Job) {
	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("job panicked", "job", job.Name, "panic", fmt.Sprint(rec))
		}
	}()

	if err := job.Run(ctx); err != nil {
		r.logger.Error("job failed", "job", job.Name, "duration", time.Since(start), "error", sanitize.Error(err))
		return
	}
	r.logger.Debug("job finished", "job", job.Name, "duration", time.Since(start))
}
