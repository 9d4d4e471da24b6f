// Package schedule evaluates a restaurant's weekly opening hours against a
// reference instant. It is the single place where open/closed semantics live;
// listing, detail and checkout all go through it.
package schedule

import (
	"time"

	domainErrors "github.com/restoflow/restoflow/internal/domain/errors"
	"github.com/restoflow/restoflow/internal/domain/model"
)

// Opening describes the next instant a restaurant starts accepting orders.
type Opening struct {
	Day        time.Weekday
	Start      string
	At         time.Time
	IsToday    bool
	IsTomorrow bool
}

// IsOpen reports whether the schedule admits orders at the given instant.
// An exceptional closure wins over the schedule. Intervals are inclusive of
// their start and exclusive of their end.
func IsOpen(ws model.WeeklySchedule, exceptionalClosure bool, now time.Time) bool {
	if exceptionalClosure {
		return false
	}

	day := ws[model.WeekdayIndex(now.Weekday())]
	if !day.Open {
		return false
	}

	minute := now.Hour()*60 + now.Minute()
	for _, iv := range day.Intervals {
		start, end, err := iv.Minutes()
		if err != nil {
			continue
		}
		if minute >= start && minute < end {
			return true
		}
	}
	return false
}

// NextOpening finds the first interval start strictly after now, scanning the
// rest of today and then each following day. The scan covers at most eight
// day-steps; a schedule with no usable interval at all yields
// ErrNoOpeningFound instead of looping.
func NextOpening(ws model.WeeklySchedule, now time.Time) (Opening, error) {
	minute := now.Hour()*60 + now.Minute()

	for offset := 0; offset <= 7; offset++ {
		day := ws[(model.WeekdayIndex(now.Weekday())+offset)%7]
		if !day.Open {
			continue
		}
		for _, iv := range day.Intervals {
			start, _, err := iv.Minutes()
			if err != nil {
				continue
			}
			if offset == 0 && start <= minute {
				continue
			}
			at := time.Date(now.Year(), now.Month(), now.Day()+offset, start/60, start%60, 0, 0, now.Location())
			return Opening{
				Day:        at.Weekday(),
				Start:      iv.Start,
				At:         at,
				IsToday:    offset == 0,
				IsTomorrow: offset == 1,
			}, nil
		}
	}

	return Opening{}, domainErrors.ErrNoOpeningFound
}

// ClosingTime returns the end of the interval containing now, or false when
// the restaurant is not currently open per the schedule alone.
func ClosingTime(ws model.WeeklySchedule, now time.Time) (time.Time, bool) {
	day := ws[model.WeekdayIndex(now.Weekday())]
	if !day.Open {
		return time.Time{}, false
	}

	minute := now.Hour()*60 + now.Minute()
	for _, iv := range day.Intervals {
		start, end, err := iv.Minutes()
		if err != nil {
			continue
		}
		if minute >= start && minute < end {
			return time.Date(now.Year(), now.Month(), now.Day(), end/60, end%60, 0, 0, now.Location()), true
		}
	}
	return time.Time{}, false
}
