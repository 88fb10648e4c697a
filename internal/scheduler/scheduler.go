// Package scheduler fires the analysis cycle on a cron cadence. Cycle
// failures are logged and the process keeps running until the next tick.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is one scheduled task.
type Job func(ctx context.Context) error

const jobTimeout = 10 * time.Minute

type Scheduler struct {
	cron *cron.Cron
}

func New() *Scheduler {
	return &Scheduler{cron: cron.New()}
}

// AddJob registers a job under a standard 5-field cron expression.
func (s *Scheduler) AddJob(name, schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		start := time.Now()
		slog.Info("starting scheduled job", "job", name)

		if err := job(ctx); err != nil {
			slog.Error("scheduled job failed", "job", name, "error", err, "elapsed", time.Since(start))
			return
		}
		slog.Info("scheduled job completed", "job", name, "elapsed", time.Since(start))
	})
	if err != nil {
		return fmt.Errorf("scheduling job %s: %w", name, err)
	}

	slog.Info("scheduled job registered", "job", name, "schedule", schedule)
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}
