package recurrence

import (
	"slices"
	"time"
)

// expandHourly walks every day touched by the window and emits the rule's
// hours on the days its filter allows. The hour cycle restarts each day.
func expandHourly(rec Record, ws, we time.Time) []Occurrence {
	rule := rec.Rule
	step := interval(rule)
	out := []Occurrence{}

	minute := 0
	if !rec.DateOnly {
		minute = rec.Start.Minute()
	}

	for day := StartOfDay(ws); day.Before(we); day = AddDays(day, 1) {
		if rule.HasDayFilter() && !slices.Contains(rule.DaysOfWeek, int(day.Weekday())) {
			continue
		}
		y, m, d := day.Date()
		for hour := rule.StartHour; hour < rule.EndHour; hour += step {
			start := time.Date(y, m, d, hour, minute, 0, 0, day.Location())
			occ := rec.occurrence(start)
			if Overlaps(occ.Start, occ.End, ws, we) {
				out = append(out, occ)
			}
		}
	}
	return out
}
