// Package transaction contains the ledger mutation and read use cases.
package transaction

import (
	"strings"
	"time"
)

// TimeRange labels the supported query windows. DAY is the current calendar
// day; WEEK and MONTH are rolling windows ending today (now-7d and now-30d),
// not calendar periods.
type TimeRange string

const (
	TimeRangeDay   TimeRange = "DAY"
	TimeRangeWeek  TimeRange = "WEEK"
	TimeRangeMonth TimeRange = "MONTH"
)

// ParseTimeRange normalizes a raw label (case and surrounding whitespace are
// ignored) and reports whether it names a known range.
func ParseTimeRange(raw string) (TimeRange, bool) {
	normalized := TimeRange(strings.ToUpper(strings.TrimSpace(raw)))
	switch normalized {
	case TimeRangeDay, TimeRangeWeek, TimeRangeMonth:
		return normalized, true
	}
	return "", false
}

// Bounds returns the [start, end] window for the range relative to now.
// Every range ends at the last millisecond of the current day.
func (r TimeRange) Bounds(now time.Time) (start, end time.Time) {
	year, month, day := now.Date()
	startOfDay := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	end = time.Date(year, month, day, 23, 59, 59, 999000000, now.Location())

	switch r {
	case TimeRangeDay:
		start = startOfDay
	case TimeRangeWeek:
		start = now.AddDate(0, 0, -7)
	case TimeRangeMonth:
		start = now.AddDate(0, 0, -30)
	}

	return start, end
}
