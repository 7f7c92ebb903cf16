package series

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrEmptyDataset is returned when a series operation is given zero records.
// The most recent record of an empty series is undefined.
var ErrEmptyDataset = errors.New("empty dataset")

// DailyRecord is one reporting day for a jurisdiction. State is empty for
// national records. Increases may be negative when the source published a
// correction.
type DailyRecord struct {
	Date             time.Time
	State            string
	PositiveIncrease int64
	NegativeIncrease int64
	DeathIncrease    int64
}

// Day returns a UTC midnight time for the given calendar date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// wireRecord mirrors the covidtracking v1 daily JSON shape. Counters are
// nullable in the feed for days a jurisdiction did not report.
type wireRecord struct {
	Date             int64  `json:"date"`
	DateChecked      string `json:"dateChecked"`
	State            string `json:"state"`
	PositiveIncrease *int64 `json:"positiveIncrease"`
	NegativeIncrease *int64 `json:"negativeIncrease"`
	DeathIncrease    *int64 `json:"deathIncrease"`
}

// UnmarshalJSON decodes one element of the daily feed. The integer "date"
// (YYYYMMDD) is preferred; "dateChecked" is used when it is missing.
func (r *DailyRecord) UnmarshalJSON(data []byte) error {
	var w wireRecord
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	date, err := parseDate(w.Date, w.DateChecked)
	if err != nil {
		return err
	}

	*r = DailyRecord{
		Date:             date,
		State:            w.State,
		PositiveIncrease: deref(w.PositiveIncrease),
		NegativeIncrease: deref(w.NegativeIncrease),
		DeathIncrease:    deref(w.DeathIncrease),
	}
	return nil
}

func parseDate(ymd int64, checked string) (time.Time, error) {
	if ymd > 0 {
		t, err := time.Parse("20060102", strconv.FormatInt(ymd, 10))
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %d: %w", ymd, err)
		}
		return t, nil
	}
	// dateChecked is sometimes published as "2021-03-07T24:00:00Z", which
	// time.RFC3339 rejects, so only the calendar part is parsed.
	if len(checked) >= len("2006-01-02") {
		t, err := time.Parse("2006-01-02", checked[:len("2006-01-02")])
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid dateChecked %q: %w", checked, err)
		}
		return t, nil
	}
	return time.Time{}, errors.New("record has no date")
}

func deref(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}

// Series is an ordered sequence of records, oldest first. The last element is
// the most recent record.
type Series []DailyRecord

// Latest returns the most recent record.
func (s Series) Latest() (DailyRecord, error) {
	if len(s) == 0 {
		return DailyRecord{}, ErrEmptyDataset
	}
	return s[len(s)-1], nil
}

// Values maps m over every record, preserving order.
func (s Series) Values(m Metric) []int64 {
	out := make([]int64, len(s))
	for i, r := range s {
		out[i] = m.ValueOf(r)
	}
	return out
}

// chronological returns a copy of raw in oldest-first order.
func chronological(raw []DailyRecord, newestFirst bool) Series {
	out := make(Series, len(raw))
	if !newestFirst {
		copy(out, raw)
		return out
	}
	for i, r := range raw {
		out[len(raw)-1-i] = r
	}
	return out
}
