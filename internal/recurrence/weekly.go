package recurrence

import (
	"time"

	"github.com/bfsmith/family-calendar/internal/constants"
)

// expandWeekly walks weeks (Sunday first) from the week containing the window
// start, aligned to the anchor's week, emitting the rule's days in rule order.
func expandWeekly(rec Record, ws, we time.Time) []Occurrence {
	out := []Occurrence{}
	days := weekdays(rec.Rule.DaysOfWeek)
	if len(days) == 0 {
		return out
	}
	step := interval(rec.Rule)

	weekCursor := StartOfWeek(ws)
	weeks := DaysBetween(StartOfWeek(rec.Start), weekCursor) / constants.DaysPerWeek
	if rem := mod(weeks, step); rem != 0 {
		weekCursor = AddDays(weekCursor, (step-rem)*constants.DaysPerWeek)
	}

	for ; weekCursor.Before(we); weekCursor = AddDays(weekCursor, step*constants.DaysPerWeek) {
		for _, d := range days {
			occ := rec.occurrence(rec.at(AddDays(weekCursor, d)))
			if Overlaps(occ.Start, occ.End, ws, we) {
				out = append(out, occ)
			}
		}
	}
	return out
}
