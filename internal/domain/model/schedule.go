package model

import (
	"fmt"
	"time"
)

// Interval is a same-day open window in "HH:MM" notation, inclusive start and
// exclusive end. Service running past midnight is stored as two intervals on
// the two calendar days; an interval never crosses a day boundary.
type Interval struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DaySchedule lists the open windows of a single weekday. Open with no
// intervals is equivalent to closed all day.
type DaySchedule struct {
	Open      bool       `json:"open"`
	Intervals []Interval `json:"intervals"`
}

// WeeklySchedule maps the seven weekdays, Monday first, to their open windows.
type WeeklySchedule [7]DaySchedule

// WeekdayIndex converts time.Weekday (Sunday-first) to the Monday-first index
// used by WeeklySchedule.
func WeekdayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// ParseClock parses an "HH:MM" value into minutes since midnight.
func ParseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock value %q out of range", s)
	}
	return h*60 + m, nil
}

// Minutes returns the interval bounds as minutes since midnight.
func (iv Interval) Minutes() (start, end int, err error) {
	if start, err = ParseClock(iv.Start); err != nil {
		return 0, 0, err
	}
	if end, err = ParseClock(iv.End); err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// Validate enforces schedule invariants: well-formed clock values, start < end,
// intervals sorted and non-overlapping within each day.
func (ws WeeklySchedule) Validate() error {
	for day, ds := range ws {
		prevEnd := -1
		for _, iv := range ds.Intervals {
			start, end, err := iv.Minutes()
			if err != nil {
				return fmt.Errorf("day %d: %w", day, err)
			}
			if start >= end {
				return fmt.Errorf("day %d: interval %s-%s must start before it ends", day, iv.Start, iv.End)
			}
			if start < prevEnd {
				return fmt.Errorf("day %d: intervals overlap or are out of order at %s", day, iv.Start)
			}
			prevEnd = end
		}
	}
	return nil
}

// HasAnyOpening reports whether at least one day carries a usable interval.
func (ws WeeklySchedule) HasAnyOpening() bool {
	for _, ds := range ws {
		if ds.Open && len(ds.Intervals) > 0 {
			return true
		}
	}
	return false
}
