package plan

import "github.com/kilianp07/forcecharge/core/model"

// Plan computes the force-charge candidate windows for a price series:
// ranged series, segmentation, then clipping to the configured bounds.
func Plan(points []model.PricePoint, settings model.Settings) []model.PriceGroup {
	series := RangedSeries(points)
	groups := Segment(series, settings)
	return Clip(groups,
		settings.MinimumForceChargingDuration(),
		settings.MaximumForceChargingDuration())
}
