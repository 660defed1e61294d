// Package latitude resolves billing-cycle date windows and reads bandwidth
// quota consumption from the latitude.sh API.
package latitude

import (
	"fmt"
	"time"
)

// CycleTimeFormat renders cycle bounds without an offset suffix - the caller
// appends a UTC marker when building a filter query
const CycleTimeFormat = "2006-01-02T15:04:05"

// CycleWindow is the half-open [Start, End) window of a billing cycle, both
// bounds at midnight
type CycleWindow struct {
	Start time.Time
	End   time.Time
}

// StartString returns the start bound formatted as CycleTimeFormat
func (w CycleWindow) StartString() string {
	return w.Start.Format(CycleTimeFormat)
}

// EndString returns the end bound formatted as CycleTimeFormat
func (w CycleWindow) EndString() string {
	return w.End.Format(CycleTimeFormat)
}

// DateConstructionError is returned when the cycle start day does not exist
// in the reference month
type DateConstructionError struct {
	StartDay int
	Year     int
	Month    time.Month
}

func (e *DateConstructionError) Error() string {
	return fmt.Sprintf("day %d does not exist in %s %d", e.StartDay, e.Month, e.Year)
}

// CycleWindowFor resolves the billing cycle enclosing the reference time for
// a cycle that restarts on startDay of each month. When the reference falls
// before startDay the cycle began the previous month.
func CycleWindowFor(startDay int, reference time.Time) (CycleWindow, error) {
	year, month, day := reference.Date()

	candidate := time.Date(year, month, startDay, 0, 0, 0, 0, reference.Location())
	if startDay < 1 || candidate.Day() != startDay {
		// time.Date normalizes out-of-range days instead of failing
		return CycleWindow{}, &DateConstructionError{StartDay: startDay, Year: year, Month: month}
	}

	if day < startDay {
		return CycleWindow{Start: shiftMonths(candidate, -1), End: candidate}, nil
	}
	return CycleWindow{Start: candidate, End: shiftMonths(candidate, 1)}, nil
}

// shiftMonths moves t by the given number of months, clamping the day to the
// last day of the target month rather than letting it normalize into the
// following month
func shiftMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()

	firstOfTarget := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}

	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
