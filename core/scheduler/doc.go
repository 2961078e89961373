package scheduler

// Package scheduler runs throttled jobs from a single polling loop.
// The loop may poll far more often than a job should execute; each
// job's throttle decouples poll cadence from action cadence without a
// separate timer primitive.
