package agenda

import (
	"slices"
	"strings"
	"time"

	"github.com/rdleal/intervalst/interval"

	"github.com/bfsmith/family-calendar/internal/logger"
	"github.com/bfsmith/family-calendar/internal/recurrence"
	"github.com/bfsmith/family-calendar/internal/repository"
)

// Conflict is a pair of timed event occurrences whose spans overlap.
type Conflict struct {
	A repository.EventOccurrence
	B repository.EventOccurrence
}

type span struct {
	start, end int64
}

// Conflicts finds every overlapping pair among the timed, non-empty
// occurrences in events. All-day events never conflict. Spans are half-open,
// so back-to-back events do not conflict. Pairs are ordered by the start of
// A, then B.
func Conflicts(events []repository.EventOccurrence) []Conflict {
	// The tree keeps one value per distinct span, so occurrences sharing a
	// span are grouped.
	groups := make(map[span][]int)
	tree := interval.NewSearchTree[[]int](func(x, y time.Time) int { return x.Compare(y) })

	timed := []int{}
	for i, ev := range events {
		if ev.Event.AllDay || !ev.Event.EndTime.After(ev.Event.StartTime) {
			continue
		}
		timed = append(timed, i)
		s := span{ev.Event.StartTime.UnixNano(), ev.Event.EndTime.UnixNano()}
		groups[s] = append(groups[s], i)
	}
	for s, idx := range groups {
		if err := tree.Insert(time.Unix(0, s.start), time.Unix(0, s.end), idx); err != nil {
			logger.Warn("Skipping event span in conflict check", "error", err)
		}
	}

	out := []Conflict{}
	for _, i := range timed {
		a := events[i]
		hits, ok := tree.AllIntersections(a.Event.StartTime, a.Event.EndTime)
		if !ok {
			continue
		}
		for _, group := range hits {
			for _, j := range group {
				if j <= i {
					continue
				}
				b := events[j]
				if recurrence.Overlaps(a.Event.StartTime, a.Event.EndTime, b.Event.StartTime, b.Event.EndTime) {
					out = append(out, Conflict{A: a, B: b})
				}
			}
		}
	}

	slices.SortFunc(out, func(x, y Conflict) int {
		if c := x.A.Event.StartTime.Compare(y.A.Event.StartTime); c != 0 {
			return c
		}
		if c := x.B.Event.StartTime.Compare(y.B.Event.StartTime); c != 0 {
			return c
		}
		return strings.Compare(x.A.Key.String()+x.B.Key.String(), y.A.Key.String()+y.B.Key.String())
	})
	return out
}
