package metrics

import "time"

// RunResult summarizes one execution of the force-charge planning job.
type RunResult struct {
	Start         time.Time
	Duration      time.Duration
	PricePoints   int
	Groups        int
	RangesCreated int
	Failed        bool
}

// RunRecorder records job run results for observability purposes.
type RunRecorder interface {
	RecordRun(res RunResult) error
}

// NopSink discards all records.
type NopSink struct{}

// RecordRun implements RunRecorder.
func (NopSink) RecordRun(RunResult) error { return nil }
