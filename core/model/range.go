package model

import "time"

// RangeState describes the lifecycle state of a force-charge range.
type RangeState string

// RangeSource describes who created a force-charge range.
type RangeSource string

const (
	RangeStatePlanned RangeState = "planned"

	RangeSourceAutomatic RangeSource = "automatic"
	RangeSourceManual    RangeSource = "manual"
)

// ForceChargeRange is a time window during which charging is forced
// regardless of other logic. Ranges are owned and persisted by the
// backend; the ID is assigned on creation.
type ForceChargeRange struct {
	ID        string      `json:"id,omitempty"`
	StartsAt  time.Time   `json:"startsAt"`
	EndsAt    time.Time   `json:"endsAt"`
	TargetSoC float64     `json:"targetStateOfCharge"`
	State     RangeState  `json:"state"`
	Source    RangeSource `json:"source"`
}

// Message is a notification stored in the backend before being pushed
// to the user's devices.
type Message struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}
