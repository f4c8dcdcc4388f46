// Package scheduler runs background jobs at fixed wall-clock times.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/savedate/save-date/internal/clock"
)

// Job is one unit of scheduled work. Errors are logged by the scheduler and
// never stop it.
type Job func(ctx context.Context) error

// Daily fires Job once a day at Hour:Minute in Location.
type Daily struct {
	Name     string
	Hour     int
	Minute   int
	Location *time.Location
	Clock    clock.Clock
	Job      Job
	Logger   *slog.Logger
}

// Next returns the first fire time strictly after now.
func (d *Daily) Next(now time.Time) time.Time {
	loc := d.Location
	if loc == nil {
		loc = time.UTC
	}

	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), d.Hour, d.Minute, 0, 0, loc)

	if !next.After(local) {
		next = time.Date(local.Year(), local.Month(), local.Day()+1, d.Hour, d.Minute, 0, 0, loc)
	}

	return next
}

// Start blocks until ctx is cancelled, running the job at every fire time.
// Runs are sequential, so a slow job delays the next one instead of
// overlapping it.
func (d *Daily) Start(ctx context.Context) {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("job", d.Name))

	for {
		now := d.Clock.Now()
		next := d.Next(now)

		logger.Info("Next run scheduled", slog.Time("at", next))

		select {
		case <-ctx.Done():
			logger.Info("Scheduler stopped")
			return
		case <-d.Clock.After(next.Sub(now)):
		}

		if err := d.Job(ctx); err != nil {
			logger.Error("Scheduled job failed", slog.String("error", err.Error()))
		}
	}
}
