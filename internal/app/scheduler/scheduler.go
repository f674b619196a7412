// Package scheduler runs named jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is one unit of scheduled work.
type Job func(ctx context.Context) error

// Scheduler wraps a seconds-precision cron. A run still in progress when its next
// tick arrives is skipped.
type Scheduler struct {
	cron *cron.Cron
	ctx  context.Context

	mu   sync.Mutex
	jobs map[string]Job
}

// New creates a Scheduler evaluating specs in loc. Jobs receive ctx.
func New(ctx context.Context, loc *time.Location) *Scheduler {
	logger := cron.PrintfLogger(slog.NewLogLogger(slog.Default().Handler(), slog.LevelWarn))
	return &Scheduler{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLocation(loc),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		ctx:  ctx,
		jobs: map[string]Job{},
	}
}

// Register schedules job under name with a six-field spec (seconds first).
func (s *Scheduler) Register(name, spec string, job Job) error {
	if _, err := s.cron.AddFunc(spec, func() { s.run(name, job) }); err != nil {
		return fmt.Errorf("register %s task: %w", name, err)
	}
	s.mu.Lock()
	s.jobs[name] = job
	s.mu.Unlock()
	return nil
}

// RunNow executes the named job immediately on the caller's goroutine.
func (s *Scheduler) RunNow(name string) error {
	s.mu.Lock()
	job, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("unknown task %q", name)
	}
	return job(s.ctx)
}

// Start starts the scheduler in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("scheduler started", "tasks", len(s.cron.Entries()))
}

// Stop stops scheduling and waits for running jobs to return.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	slog.Info("scheduler stopped")
}

func (s *Scheduler) run(name string, job Job) {
	start := time.Now()
	slog.Info("running task", "task", name)
	if err := job(s.ctx); err != nil {
		slog.Error("task failed", "task", name, "error", err, "elapsed", time.Since(start))
		return
	}
	slog.Info("task finished", "task", name, "elapsed", time.Since(start))
}
