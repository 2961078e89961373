package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PricePoint is one quoted electricity price for a fixed-length slot.
// The slot length is implied by the gap to the next point in the series
// and is not stored explicitly.
type PricePoint struct {
	StartsAt time.Time       `json:"startsAt"`
	Total    decimal.Decimal `json:"total"`
}

// RangedPricePoint annotates a PricePoint with the interval during
// which the price is valid. ValidTo is the next point's start minus one
// second; the last point of a series has no successor and is never
// ranged.
type RangedPricePoint struct {
	PricePoint
	ValidFrom time.Time `json:"validFrom"`
	ValidTo   time.Time `json:"validTo"`
}

// PriceGroup is a maximal run of contiguous cheap points.
type PriceGroup struct {
	Points []RangedPricePoint
}

// Span returns the interval covered by the group. ok is false for an
// empty group, which has no span.
func (g PriceGroup) Span() (start, end time.Time, ok bool) {
	if len(g.Points) == 0 {
		return time.Time{}, time.Time{}, false
	}
	start = g.Points[0].ValidFrom
	end = g.Points[0].ValidTo
	for _, p := range g.Points[1:] {
		if p.ValidFrom.Before(start) {
			start = p.ValidFrom
		}
		if p.ValidTo.After(end) {
			end = p.ValidTo
		}
	}
	return start, end, true
}

// Duration returns the length of the group's span, or zero for an
// empty group.
func (g PriceGroup) Duration() time.Duration {
	start, end, ok := g.Span()
	if !ok {
		return 0
	}
	return end.Sub(start)
}
