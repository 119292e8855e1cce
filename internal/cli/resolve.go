package cli

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/bfsmith/family-calendar/internal/models"
)

// Suggest returns the name closest to ref when it is near enough to be a
// likely typo, or "".
func Suggest(ref string, names []string) string {
	ref = strings.ToLower(strings.TrimSpace(ref))
	best, bestDist := "", -1
	for _, n := range names {
		d := levenshtein.ComputeDistance(ref, strings.ToLower(n))
		if bestDist < 0 || d < bestDist {
			best, bestDist = n, d
		}
	}
	if bestDist < 0 || bestDist > max(2, len(ref)/3) {
		return ""
	}
	return best
}

// resolve matches ref against ids first, then names ignoring case.
func resolve[T any](kind, ref string, items []T, id, name func(T) string) (T, error) {
	var zero T
	for _, it := range items {
		if id(it) == ref {
			return it, nil
		}
	}
	names := make([]string, 0, len(items))
	for _, it := range items {
		if strings.EqualFold(strings.TrimSpace(name(it)), strings.TrimSpace(ref)) {
			return it, nil
		}
		names = append(names, name(it))
	}

	if s := Suggest(ref, names); s != "" {
		return zero, fmt.Errorf("no %s named %q; did you mean %q?", kind, ref, s)
	}
	return zero, fmt.Errorf("no %s named %q", kind, ref)
}

// ResolveMember finds a family member by id or name.
func (c *Context) ResolveMember(ref string) (models.FamilyMember, error) {
	all, err := c.Repos.Members.GetAll()
	if err != nil {
		return models.FamilyMember{}, err
	}
	return resolve("family member", ref, all,
		func(m models.FamilyMember) string { return m.ID },
		func(m models.FamilyMember) string { return m.Name })
}

// ResolveCalendar finds a calendar by id or name.
func (c *Context) ResolveCalendar(ref string) (models.Calendar, error) {
	all, err := c.Repos.Calendars.GetAll()
	if err != nil {
		return models.Calendar{}, err
	}
	return resolve("calendar", ref, all,
		func(cal models.Calendar) string { return cal.ID },
		func(cal models.Calendar) string { return cal.Name })
}

// ResolveEvent finds an event by id or title; a flattened occurrence key
// resolves to its base event.
func (c *Context) ResolveEvent(ref string) (models.Event, error) {
	all, err := c.Repos.Events.Query(models.EventQuery{})
	if err != nil {
		return models.Event{}, err
	}
	ev, err := resolveByTitle("event", ref, all,
		func(e models.Event) string { return e.ID },
		func(e models.Event) string { return e.Title })
	if err == nil {
		return ev, nil
	}
	if base, getErr := c.Repos.Events.Get(keyBase(ref)); getErr == nil {
		return base, nil
	}
	return models.Event{}, err
}

// ResolveChore finds a chore by id or title; a flattened occurrence key
// resolves to its base chore.
func (c *Context) ResolveChore(ref string) (models.Chore, error) {
	all, err := c.Repos.Chores.GetAll()
	if err != nil {
		return models.Chore{}, err
	}
	ch, err := resolveByTitle("chore", ref, all,
		func(c models.Chore) string { return c.ID },
		func(c models.Chore) string { return c.Title })
	if err == nil {
		return ch, nil
	}
	if base, getErr := c.Repos.Chores.Get(keyBase(ref)); getErr == nil {
		return base, nil
	}
	return models.Chore{}, err
}

// resolveByTitle is resolve, but a title shared by several records is
// rejected rather than picking one.
func resolveByTitle[T any](kind, ref string, items []T, id, title func(T) string) (T, error) {
	var zero T
	matches := []T{}
	for _, it := range items {
		if id(it) == ref {
			return it, nil
		}
		if strings.EqualFold(strings.TrimSpace(title(it)), strings.TrimSpace(ref)) {
			matches = append(matches, it)
		}
	}
	if len(matches) > 1 {
		return zero, fmt.Errorf("%d %ss are titled %q; use an id", len(matches), kind, ref)
	}
	if len(matches) == 1 {
		return matches[0], nil
	}
	return resolve(kind, ref, items, id, title)
}
