package usecase

import (
	"context"
	"time"

	"FeedbackInsights/internal/ports"
)

// Scheduler wires the cron-like driver with the batch job.
type Scheduler struct {
	driver ports.Scheduler
	batch  *Batch
}

// NewScheduler returns a helper to start/stop the recurring batch run.
func NewScheduler(driver ports.Scheduler, batch *Batch) *Scheduler {
	return &Scheduler{driver: driver, batch: batch}
}

// Start registers the batch job with the provided scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.batch == nil {
		return nil
	}

	job := func(time.Time) {
		s.batch.Run(ctx)
	}

	return s.driver.Start(ctx, job)
}

// Stop gracefully tears down the underlying scheduler.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}

	return s.driver.Stop(ctx)
}
