package plan

import (
	"time"

	"github.com/kilianp07/forcecharge/core/model"
)

// Clip enforces the duration bounds on each group. A group longer than
// max sheds items from the front until it fits, keeping its latest
// slots. Groups shorter than min after trimming are discarded.
func Clip(groups []model.PriceGroup, min, max time.Duration) []model.PriceGroup {
	var out []model.PriceGroup
	for _, g := range groups {
		g = trimFront(g, max)
		if len(g.Points) == 0 || g.Duration() < min {
			continue
		}
		out = append(out, g)
	}
	return out
}

// trimFront removes leading items until the group fits within max.
// Duration is non-increasing as items are removed, so the loop ends
// within len(Points) steps.
func trimFront(g model.PriceGroup, max time.Duration) model.PriceGroup {
	for len(g.Points) > 0 && g.Duration() > max {
		g.Points = g.Points[1:]
	}
	return g
}
