package series

import (
	"fmt"
	"strings"
)

// TimeScale selects how much of a series is visible.
type TimeScale int

const (
	Max TimeScale = iota
	Week
	Month
)

var scaleNames = [...]string{
	Max:   "max",
	Week:  "week",
	Month: "month",
}

func (s TimeScale) String() string {
	if s >= 0 && int(s) < len(scaleNames) {
		return scaleNames[s]
	}
	return "unknown"
}

// Days returns the number of records the scale keeps, or 0 for Max.
func (s TimeScale) Days() int {
	switch s {
	case Week:
		return 7
	case Month:
		return 30
	default:
		return 0
	}
}

// ParseTimeScale parses a time scale name as accepted on the command line.
func ParseTimeScale(s string) (TimeScale, error) {
	for i, name := range scaleNames {
		if strings.EqualFold(s, name) {
			return TimeScale(i), nil
		}
	}
	return Max, fmt.Errorf("unknown time scale %q (use week, month or max)", s)
}

// Apply returns the trailing part of s visible under scale. The window is
// anchored at the most recent record and never padded. The result has its
// capacity clipped so appends cannot write into s.
func Apply(s Series, scale TimeScale) (Series, error) {
	if len(s) == 0 {
		return nil, ErrEmptyDataset
	}
	n := scale.Days()
	if n == 0 || n >= len(s) {
		return s[:len(s):len(s)], nil
	}
	return s[len(s)-n : len(s) : len(s)], nil
}
