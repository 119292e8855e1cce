// Package recurrence expands recurring events and chores into the concrete
// occurrences that fall inside a query window. Everything here is a pure
// function of its arguments; occurrences are never stored.
package recurrence

import (
	"time"

	"github.com/bfsmith/family-calendar/internal/constants"
	"github.com/bfsmith/family-calendar/internal/models"
)

// Record is a base record as seen by the engine.
type Record struct {
	ID    string
	Start time.Time // anchor; interval alignment and time of day come from here
	End   time.Time
	Rule  *models.Recurrence

	// DateOnly marks point-in-time records: daily and weekly occurrences land
	// on midnight, hourly ones on the hour, and every occurrence is zero length.
	DateOnly bool
}

// Occurrence is one concrete instance of a Record.
type Occurrence struct {
	Key   Key
	Start time.Time
	End   time.Time
}

func (r Record) duration() time.Duration {
	if r.DateOnly {
		return 0
	}
	return r.End.Sub(r.Start)
}

// at places the record's time of day on the calendar date of day.
func (r Record) at(day time.Time) time.Time {
	y, m, d := day.Date()
	if r.DateOnly {
		return time.Date(y, m, d, 0, 0, 0, 0, day.Location())
	}
	return time.Date(y, m, d, r.Start.Hour(), r.Start.Minute(), r.Start.Second(), r.Start.Nanosecond(), day.Location())
}

func (r Record) occurrence(start time.Time) Occurrence {
	return Occurrence{
		Key:   OccurrenceKey(r.ID, start),
		Start: start,
		End:   start.Add(r.duration()),
	}
}

// Expand returns the occurrences of rec that overlap [windowStart, windowEnd).
// Calendar arithmetic (midnights, weekdays, time of day) happens in the
// location of windowStart.
//
// Without a rule the record itself is returned, under its canonical key, when
// it overlaps the window. An interval below 1 is treated as 1.
func Expand(rec Record, windowStart, windowEnd time.Time) []Occurrence {
	loc := windowStart.Location()
	ws, we := windowStart, windowEnd.In(loc)
	rec.Start, rec.End = rec.Start.In(loc), rec.End.In(loc)

	if rec.Rule == nil {
		end := rec.Start.Add(rec.duration())
		if !Overlaps(rec.Start, end, ws, we) {
			return []Occurrence{}
		}
		return []Occurrence{{Key: CanonicalKey(rec.ID), Start: rec.Start, End: end}}
	}

	switch rec.Rule.Kind {
	case constants.RecurrenceDaily:
		return expandDaily(rec, ws, we)
	case constants.RecurrenceWeekly:
		return expandWeekly(rec, ws, we)
	case constants.RecurrenceHourly:
		return expandHourly(rec, ws, we)
	default:
		return []Occurrence{}
	}
}

func interval(rule *models.Recurrence) int {
	if rule.Interval < 1 {
		return 1
	}
	return rule.Interval
}

// weekdays returns the valid days of days in their given order, each once.
func weekdays(days []int) []int {
	var seen [constants.DaysPerWeek]bool
	out := make([]int, 0, len(days))
	for _, d := range days {
		if d < 0 || d >= constants.DaysPerWeek || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}
