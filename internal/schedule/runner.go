// Package schedule re-runs analysis on a cron schedule.
package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Reanalyzer refreshes every stored report, returning how many succeeded.
type Reanalyzer interface {
	ReanalyzeAll(ctx context.Context) (int, error)
}

// parser accepts standard 5-field specs ("0 9 * * 1-5") and descriptors
// ("@hourly", "@every 30m").
var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Runner periodically invokes a Reanalyzer.
type Runner struct {
	spec  string
	sched cron.Schedule
	job   Reanalyzer
	log   *slog.Logger

	now   func() time.Time
	after func(time.Duration) <-chan time.Time
}

// New parses spec and returns a Runner for job.
func New(spec string, job Reanalyzer, logger *slog.Logger) (*Runner, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, fmt.Errorf("empty schedule")
	}
	sched, err := parser.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		spec:  spec,
		sched: sched,
		job:   job,
		log:   logger,
		now:   time.Now,
		after: time.After,
	}, nil
}

// Next returns the first run time after t.
func (r *Runner) Next(t time.Time) time.Time {
	return r.sched.Next(t)
}

// Run blocks, running the job at each scheduled time until ctx is done.
// Job failures are logged and do not stop the schedule.
func (r *Runner) Run(ctx context.Context) error {
	r.log.Info("re-analysis scheduled", "schedule", r.spec)
	for {
		now := r.now()
		next := r.sched.Next(now)
		wait := next.Sub(now)
		r.log.Debug("next re-analysis", "at", next.Format(time.DateTime), "in", wait.Round(time.Second))

		select {
		case <-ctx.Done():
			return nil
		case <-r.after(wait):
		}
		if ctx.Err() != nil {
			return nil
		}
		r.RunOnce(ctx)
	}
}

// RunOnce runs the job immediately and logs the outcome.
func (r *Runner) RunOnce(ctx context.Context) {
	start := r.now()
	n, err := r.job.ReanalyzeAll(ctx)
	if err != nil {
		r.log.Warn("re-analysis finished with errors", "analyzed", n, "error", err)
		return
	}
	r.log.Info("re-analysis complete", "analyzed", n, "elapsed", r.now().Sub(start).Round(time.Millisecond))
}
