package series

import (
	"fmt"
	"strings"
)

// Metric selects which daily increase is charted.
type Metric int

const (
	Positive Metric = iota
	Negative
	Death
)

var metricNames = [...]string{
	Positive: "positive",
	Negative: "negative",
	Death:    "death",
}

func (m Metric) String() string {
	if m >= 0 && int(m) < len(metricNames) {
		return metricNames[m]
	}
	return "unknown"
}

// ValueOf returns the field of r that m selects, untransformed.
func (m Metric) ValueOf(r DailyRecord) int64 {
	switch m {
	case Negative:
		return r.NegativeIncrease
	case Death:
		return r.DeathIncrease
	default:
		return r.PositiveIncrease
	}
}

// ValueOf is shorthand for m.ValueOf(r).
func ValueOf(r DailyRecord, m Metric) int64 {
	return m.ValueOf(r)
}

// ParseMetric parses a metric name as accepted on the command line.
func ParseMetric(s string) (Metric, error) {
	for i, name := range metricNames {
		if strings.EqualFold(s, name) {
			return Metric(i), nil
		}
	}
	return Positive, fmt.Errorf("unknown metric %q (use positive, negative or death)", s)
}
