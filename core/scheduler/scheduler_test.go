package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kilianp07/forcecharge/infra/logger"
)

type countingJob struct {
	runs int
	err  error
}

func (j *countingJob) Name() string { return "counting" }

func (j *countingJob) Run(context.Context) error {
	j.runs++
	return j.err
}

func newFakeClock(start time.Time) (*time.Time, func() time.Time) {
	now := start
	return &now, func() time.Time { return now }
}

func TestThrottledJob_CoolingIsNoOp(t *testing.T) {
	t0 := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	now, clock := newFakeClock(t0)
	job := &countingJob{}
	tj := NewThrottledJob(job, 10*time.Minute)
	tj.now = clock

	ran, err := tj.RunIfNeeded(context.Background())
	if err != nil || !ran {
		t.Fatalf("first request: ran=%v err=%v", ran, err)
	}

	*now = t0.Add(5 * time.Minute)
	ran, err = tj.RunIfNeeded(context.Background())
	if err != nil || ran {
		t.Fatalf("request during cooldown: ran=%v err=%v", ran, err)
	}
	if job.runs != 1 {
		t.Fatalf("job ran %d times", job.runs)
	}

	*now = t0.Add(11 * time.Minute)
	ran, err = tj.RunIfNeeded(context.Background())
	if err != nil || !ran {
		t.Fatalf("request after cooldown: ran=%v err=%v", ran, err)
	}
	if job.runs != 2 {
		t.Fatalf("job ran %d times", job.runs)
	}
}

func TestThrottledJob_FailureStillAdvancesClock(t *testing.T) {
	t0 := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	now, clock := newFakeClock(t0)
	job := &countingJob{err: errors.New("boom")}
	tj := NewThrottledJob(job, 10*time.Minute)
	tj.now = clock

	if _, err := tj.RunIfNeeded(context.Background()); err == nil {
		t.Fatal("expected job error")
	}
	// A failed run must not trigger an immediate retry on the next poll.
	*now = t0.Add(time.Second)
	ran, _ := tj.RunIfNeeded(context.Background())
	if ran {
		t.Fatal("failed job retried before max age elapsed")
	}
	if job.runs != 1 {
		t.Fatalf("job ran %d times", job.runs)
	}
}

func TestScheduler_TickSwallowsJobErrors(t *testing.T) {
	failing := &countingJob{err: errors.New("boom")}
	fine := &countingJob{}
	s := New(time.Second, logger.NopLogger{},
		NewThrottledJob(failing, time.Minute),
		NewThrottledJob(fine, time.Minute))

	s.Tick(context.Background())

	if failing.runs != 1 || fine.runs != 1 {
		t.Fatalf("runs: failing=%d fine=%d", failing.runs, fine.runs)
	}
}

func TestScheduler_StartStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	job := &countingJob{}
	s := New(time.Millisecond, logger.NopLogger{}, NewThrottledJob(job, time.Hour))

	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("start returned %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
	if job.runs == 0 {
		t.Fatal("job never ran")
	}
}
