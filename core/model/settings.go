package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Settings holds the planning parameters maintained in the backend.
// They are read-only for this service; the companion app edits them.
type Settings struct {
	// NumberOfCompareRanges is the size of the lookahead window used to
	// compute the local trend average.
	NumberOfCompareRanges int `json:"numberOfCompareRanges"`
	// CompareRangePercentage scales the trend average into the cheapness
	// threshold, e.g. 0.9 requires a price 10% below the local trend.
	CompareRangePercentage decimal.Decimal `json:"compareRangePercentage"`
	// MaximumElectricityPrice is an absolute ceiling independent of the
	// local trend.
	MaximumElectricityPrice decimal.Decimal `json:"maximumElectricityPrice"`

	MinChargeDurationMinutes int `json:"minimumForceChargingDurationMinutes"`
	MaxChargeDurationMinutes int `json:"maximumForceChargingDurationMinutes"`
	SearchWindowHours        int `json:"searchWindowDurationHours"`
}

// MinimumForceChargingDuration returns the shortest useful charge window.
func (s Settings) MinimumForceChargingDuration() time.Duration {
	return time.Duration(s.MinChargeDurationMinutes) * time.Minute
}

// MaximumForceChargingDuration returns the longest allowed charge window.
func (s Settings) MaximumForceChargingDuration() time.Duration {
	return time.Duration(s.MaxChargeDurationMinutes) * time.Minute
}

// SearchWindowDuration returns how far ahead prices are inspected.
func (s Settings) SearchWindowDuration() time.Duration {
	return time.Duration(s.SearchWindowHours) * time.Hour
}

// Validate checks mandatory fields.
func (s Settings) Validate() error {
	if s.NumberOfCompareRanges <= 0 {
		return errors.New("numberOfCompareRanges must be positive")
	}
	if s.CompareRangePercentage.LessThanOrEqual(decimal.Zero) {
		return errors.New("compareRangePercentage must be positive")
	}
	if s.MinChargeDurationMinutes < 0 {
		return errors.New("minimum force-charging duration must not be negative")
	}
	if s.MaxChargeDurationMinutes <= 0 {
		return errors.New("maximum force-charging duration must be positive")
	}
	if s.MinChargeDurationMinutes > s.MaxChargeDurationMinutes {
		return errors.New("minimum force-charging duration exceeds maximum")
	}
	if s.SearchWindowHours <= 0 {
		return errors.New("search window duration must be positive")
	}
	return nil
}
