package config

import "fmt"

// PlannerConfig defines the cadence of the planning loop.
type PlannerConfig struct {
	// PollIntervalSeconds is how often the loop checks job eligibility.
	PollIntervalSeconds int `json:"poll_interval_seconds"`
	// JobMaxAgeMinutes is the minimum elapsed time between two actual
	// executions of the planning job.
	JobMaxAgeMinutes int `json:"job_max_age_minutes"`
}

// SetDefaults applies sane defaults.
func (c *PlannerConfig) SetDefaults() {
	if c.PollIntervalSeconds == 0 {
		c.PollIntervalSeconds = 10
	}
	if c.JobMaxAgeMinutes == 0 {
		c.JobMaxAgeMinutes = 10
	}
}

// Validate checks mandatory fields.
func (c PlannerConfig) Validate() error {
	if c.PollIntervalSeconds <= 0 {
		return fmt.Errorf("poll_interval_seconds must be positive")
	}
	if c.JobMaxAgeMinutes <= 0 {
		return fmt.Errorf("job_max_age_minutes must be positive")
	}
	return nil
}
