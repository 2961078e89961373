package scheduler

import (
	"context"
	"time"

	"github.com/kilianp07/forcecharge/core/logger"
)

// Job is a unit of work invoked by the scheduler loop.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// ThrottledJob gates a Job so it executes at most once per MaxAge.
// Run requests while the job is cooling down are no-ops.
type ThrottledJob struct {
	Job    Job
	MaxAge time.Duration

	lastRun time.Time
	now     func() time.Time
}

// NewThrottledJob wraps job with a throttle of the given minimum age.
func NewThrottledJob(job Job, maxAge time.Duration) *ThrottledJob {
	return &ThrottledJob{Job: job, MaxAge: maxAge, now: time.Now}
}

// RunIfNeeded executes the job when it is due and reports whether it
// ran. The last-run timestamp advances even when the job fails, so a
// failing job waits a full MaxAge before its next attempt instead of
// retrying on every poll.
func (t *ThrottledJob) RunIfNeeded(ctx context.Context) (bool, error) {
	if !t.lastRun.IsZero() && t.now().Sub(t.lastRun) < t.MaxAge {
		return false, nil
	}
	err := t.Job.Run(ctx)
	t.lastRun = t.now()
	return true, err
}

// Scheduler evaluates its jobs once per poll interval. Jobs run
// sequentially on the loop goroutine; a slow job delays the ones after
// it but never the next iteration's eligibility check.
type Scheduler struct {
	PollInterval time.Duration

	jobs []*ThrottledJob
	log  logger.Logger
}

// New creates a Scheduler driving the given jobs.
func New(pollInterval time.Duration, log logger.Logger, jobs ...*ThrottledJob) *Scheduler {
	return &Scheduler{PollInterval: pollInterval, jobs: jobs, log: log}
}

// Start blocks until ctx is cancelled, ticking once per poll interval.
func (s *Scheduler) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick evaluates every job once. Job errors are logged and swallowed;
// the loop always proceeds to the next iteration.
func (s *Scheduler) Tick(ctx context.Context) {
	for _, j := range s.jobs {
		ran, err := j.RunIfNeeded(ctx)
		switch {
		case err != nil:
			s.log.Errorf("job %s: %v", j.Job.Name(), err)
		case ran:
			s.log.Debugf("job %s completed", j.Job.Name())
		}
	}
}
