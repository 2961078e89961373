package plan

import (
	"github.com/shopspring/decimal"

	"github.com/kilianp07/forcecharge/core/model"
)

// Segment partitions the ranged series into groups of consecutive cheap
// points. A point is cheap when its price is strictly below the average
// of the next NumberOfCompareRanges prices scaled by
// CompareRangePercentage, and at or below MaximumElectricityPrice.
// Points near the end of the series without a full compare window ahead
// of them are skipped: they neither extend nor close a group.
func Segment(series []model.RangedPricePoint, settings model.Settings) []model.PriceGroup {
	var (
		groups []model.PriceGroup
		open   *model.PriceGroup
	)
	for i, point := range series {
		window, ok := compareWindow(series, i, settings.NumberOfCompareRanges)
		if !ok {
			continue
		}
		if isCheap(point, window, settings) {
			if open == nil {
				open = &model.PriceGroup{}
			}
			open.Points = append(open.Points, point)
			continue
		}
		if open != nil {
			groups = append(groups, *open)
			open = nil
		}
	}
	if open != nil {
		groups = append(groups, *open)
	}
	return groups
}

// compareWindow returns the n points strictly after index i. ok is
// false when fewer than n points remain.
func compareWindow(series []model.RangedPricePoint, i, n int) ([]model.RangedPricePoint, bool) {
	if n <= 0 || i+n >= len(series) {
		return nil, false
	}
	return series[i+1 : i+1+n], true
}

func isCheap(point model.RangedPricePoint, window []model.RangedPricePoint, settings model.Settings) bool {
	prices := make([]decimal.Decimal, len(window))
	for i, w := range window {
		prices[i] = w.Total
	}
	threshold := decimal.Avg(prices[0], prices[1:]...).Mul(settings.CompareRangePercentage)
	return point.Total.LessThan(threshold) &&
		point.Total.LessThanOrEqual(settings.MaximumElectricityPrice)
}
