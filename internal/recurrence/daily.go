package recurrence

import "time"

// expandDaily walks calendar days from the later of the anchor and the window
// start, snapped forward onto the anchor's interval cycle.
func expandDaily(rec Record, ws, we time.Time) []Occurrence {
	step := interval(rec.Rule)
	out := []Occurrence{}

	from := rec.Start
	if ws.After(from) {
		from = ws
	}
	cursor := StartOfDay(from)
	if rem := mod(DaysBetween(rec.Start, cursor), step); rem != 0 {
		cursor = AddDays(cursor, step-rem)
	}

	for ; cursor.Before(we); cursor = AddDays(cursor, step) {
		occ := rec.occurrence(rec.at(cursor))
		if Overlaps(occ.Start, occ.End, ws, we) {
			out = append(out, occ)
		}
	}
	return out
}
