package plan

import (
	"time"

	"github.com/kilianp07/forcecharge/core/model"
)

// RangedSeries converts a chronologically ascending price series into
// points annotated with their validity interval. Each point is valid
// from its own start until one second before the next point's start.
// The last point has no successor to bound it and is dropped; fewer
// than two points yields nil.
func RangedSeries(points []model.PricePoint) []model.RangedPricePoint {
	if len(points) < 2 {
		return nil
	}
	series := make([]model.RangedPricePoint, 0, len(points)-1)
	for i := 0; i < len(points)-1; i++ {
		series = append(series, model.RangedPricePoint{
			PricePoint: points[i],
			ValidFrom:  points[i].StartsAt,
			ValidTo:    points[i+1].StartsAt.Add(-time.Second),
		})
	}
	return series
}
