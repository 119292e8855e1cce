package recurrence

import (
	"cmp"
	"slices"
	"time"

	"github.com/bfsmith/family-calendar/internal/constants"
)

// Overlaps reports whether [start, end) intersects the half-open window
// [windowStart, windowEnd). Zero or negative spans are treated as the instant
// start.
func Overlaps(start, end, windowStart, windowEnd time.Time) bool {
	if !end.After(start) {
		return !start.Before(windowStart) && start.Before(windowEnd)
	}
	return start.Before(windowEnd) && end.After(windowStart)
}

// StartOfDay truncates t to local midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns midnight of the Sunday on or before t.
func StartOfWeek(t time.Time) time.Time {
	return AddDays(StartOfDay(t), -int(t.Weekday()))
}

// AddDays moves t by n calendar days, keeping its wall-clock time.
func AddDays(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+n, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// DaysBetween counts calendar days from a to b, each read in its own location.
// The result is negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(civilDate(b).Sub(civilDate(a)) / (constants.HoursPerDay * time.Hour))
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SortOccurrences orders occurrences by start, breaking ties by key.
func SortOccurrences(occs []Occurrence) {
	slices.SortStableFunc(occs, func(a, b Occurrence) int {
		if c := a.Start.Compare(b.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.Key.String(), b.Key.String())
	})
}

// mod is the non-negative remainder of a / b.
func mod(a, b int) int {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}
