package ui

import (
	"fmt"
	"time"

	"github.com/bamsammich/covidspark/internal/series"
	"github.com/bamsammich/covidspark/internal/stats"
)

// FormatBytes wraps stats.FormatBytes for UI use.
func FormatBytes(b int64) string {
	return stats.FormatBytes(b)
}

// FormatDuration formats elapsed time concisely.
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	if h > 0 {
		return fmt.Sprintf("%dh %02dm %02ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %02ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

// RegionName returns the display name of a state code, "national" for "".
func RegionName(state string) string {
	if state == "" {
		return "national"
	}
	return state
}

// MetricTitle returns the heading shown above the chart for m.
func MetricTitle(m series.Metric) string {
	switch m {
	case series.Negative:
		return "negative cases"
	case series.Death:
		return "deaths"
	default:
		return "positive cases"
	}
}
