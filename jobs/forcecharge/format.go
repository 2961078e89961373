package forcecharge

import (
	"fmt"
	"strings"
	"time"

	"github.com/kilianp07/forcecharge/core/model"
)

// DescribeRanges renders created ranges as a short human-readable
// listing for notification messages, one range per line.
func DescribeRanges(ranges []model.ForceChargeRange) string {
	lines := make([]string, 0, len(ranges))
	for _, r := range ranges {
		lines = append(lines, fmt.Sprintf("%s - %s (%s)",
			r.StartsAt.Format("Mon 15:04"),
			r.EndsAt.Format("15:04"),
			formatDuration(r.EndsAt.Sub(r.StartsAt))))
	}
	return strings.Join(lines, "\n")
}

// formatDuration renders a duration as "2h05m" or "45m", rounded to
// the nearest minute.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh%02dm", h, m)
}
