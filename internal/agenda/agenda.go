// Package agenda lays event and chore occurrences out day by day.
package agenda

import (
	"slices"
	"time"

	"github.com/bfsmith/family-calendar/internal/models"
	"github.com/bfsmith/family-calendar/internal/recurrence"
	"github.com/bfsmith/family-calendar/internal/repository"
)

type ChoreItem struct {
	repository.ChoreOccurrence
	Completed   bool
	CompletedBy string
}

type Day struct {
	Date   time.Time
	Events []repository.EventOccurrence
	Chores []ChoreItem
}

// Range returns the bounds [start, end) covering days calendar days from the
// day containing from.
func Range(from time.Time, days int) (time.Time, time.Time) {
	start := recurrence.StartOfDay(from)
	return start, recurrence.AddDays(start, max(days, 1))
}

// Build distributes occurrences over days starting at the day of from.
// Events appear on every day they overlap. Generated chores appear on the day
// of their occurrence; a one-off chore appears on the day it was completed,
// or on the first day while still outstanding.
func Build(from time.Time, days int, events []repository.EventOccurrence, chores []repository.ChoreOccurrence, completions []models.ChoreCompletion) []Day {
	start, end := Range(from, days)
	loc := start.Location()

	out := []Day{}
	for d := start; d.Before(end); d = recurrence.AddDays(d, 1) {
		out = append(out, Day{Date: d, Events: []repository.EventOccurrence{}, Chores: []ChoreItem{}})
	}
	index := func(t time.Time) int {
		return recurrence.DaysBetween(start, t.In(loc))
	}

	for _, ev := range events {
		for i := range out {
			next := recurrence.AddDays(out[i].Date, 1)
			if recurrence.Overlaps(ev.Event.StartTime, ev.Event.EndTime, out[i].Date, next) {
				out[i].Events = append(out[i].Events, ev)
			}
		}
	}

	byChore := make(map[string][]models.ChoreCompletion)
	for _, c := range completions {
		byChore[c.ChoreID] = append(byChore[c.ChoreID], c)
	}

	for _, ch := range chores {
		item := ChoreItem{ChoreOccurrence: ch}
		day := 0
		if ch.IsGenerated() {
			day = index(ch.Date)
			for _, c := range byChore[ch.Chore.ID] {
				if c.OccurrenceDate.UnixMilli() == ch.Date.UnixMilli() {
					item.Completed, item.CompletedBy = true, c.FamilyMemberID
					break
				}
			}
		} else {
			for _, c := range byChore[ch.Chore.ID] {
				if i := index(c.OccurrenceDate); i >= 0 && i < len(out) {
					day = i
					item.Completed, item.CompletedBy = true, c.FamilyMemberID
					break
				}
			}
		}
		if day < 0 || day >= len(out) {
			continue
		}
		out[day].Chores = append(out[day].Chores, item)
	}

	for i := range out {
		slices.SortStableFunc(out[i].Chores, func(a, b ChoreItem) int {
			if a.Completed != b.Completed {
				if a.Completed {
					return 1
				}
				return -1
			}
			return a.Date.Compare(b.Date)
		})
	}
	return out
}

// Points totals the points of completed chores per member in days, crediting
// whoever completed each occurrence.
func Points(days []Day) map[string]int {
	totals := make(map[string]int)
	for _, d := range days {
		for _, c := range d.Chores {
			if c.Completed {
				totals[c.CompletedBy] += c.Chore.Points
			}
		}
	}
	return totals
}
