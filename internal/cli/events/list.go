package events

import (
	"fmt"

	"github.com/bfsmith/family-calendar/internal/agenda"
	"github.com/bfsmith/family-calendar/internal/cli"
	"github.com/bfsmith/family-calendar/internal/models"
	"github.com/bfsmith/family-calendar/internal/recurrence"
)

type EventListCmd struct {
	From      string `help:"Only events overlapping this date or later (YYYY-MM-DD)."`
	To        string `help:"Only events starting before the end of this date (YYYY-MM-DD)."`
	Calendar  string `short:"c" help:"Calendar name or ID."`
	Title     string `short:"t" help:"Case-insensitive title filter."`
	Recurring bool   `help:"Only recurring events."`
	Limit     int    `short:"n" help:"Maximum number of events to show."`
	Offset    int    `help:"Number of events to skip."`
	ShowIDs   bool   `help:"Show event IDs." name:"show-ids"`
}

func (c *EventListCmd) Run(ctx *cli.Context) error {
	q := models.EventQuery{
		Title:         c.Title,
		RecurringOnly: c.Recurring,
		Limit:         c.Limit,
		Offset:        c.Offset,
	}
	if c.From != "" {
		from, err := ctx.ParseDate(c.From)
		if err != nil {
			return err
		}
		q.Start = &from
	}
	if c.To != "" {
		to, err := ctx.ParseDate(c.To)
		if err != nil {
			return err
		}
		to = recurrence.AddDays(to, 1)
		q.End = &to
	}
	if c.Calendar != "" {
		cal, err := ctx.ResolveCalendar(c.Calendar)
		if err != nil {
			return err
		}
		q.CalendarID = cal.ID
	}

	list, err := ctx.Repos.Events.Query(q)
	if err != nil {
		return fmt.Errorf("failed to get events: %w", err)
	}
	if len(list) == 0 {
		ctx.Println("No events found")
		return nil
	}

	lookup, err := calendarLookup(ctx)
	if err != nil {
		return err
	}

	ctx.Println("Events:")
	for _, e := range list {
		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", e.ID)
		}
		ctx.Printf("  %s%s [%s]\n", e.Title, idStr, lookup(e))
		ctx.Printf("      %s, %s\n", formatSpan(e, ctx.Location), cli.FormatRecurrence(e.Recurring))
	}
	return nil
}

// calendarLookup returns a function naming an event's calendar in its colour.
func calendarLookup(ctx *cli.Context) (func(models.Event) string, error) {
	cals, err := ctx.Repos.Calendars.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get calendars: %w", err)
	}
	byID := make(map[string]models.Calendar, len(cals))
	for _, cal := range cals {
		byID[cal.ID] = cal
	}
	return func(e models.Event) string {
		cal, ok := byID[e.CalendarID]
		if !ok {
			return "?"
		}
		color := cal.Color
		if e.Color != "" {
			color = e.Color
		}
		return agenda.Swatch(cal.Name, color)
	}, nil
}

type EventOccurrencesCmd struct {
	From     string `help:"First day (YYYY-MM-DD, today, tomorrow)." default:"today"`
	Days     int    `short:"d" help:"Number of days to expand." default:"7"`
	Calendar string `short:"c" help:"Calendar name or ID."`
}

func (c *EventOccurrencesCmd) Run(ctx *cli.Context) error {
	if c.Days < 1 {
		return fmt.Errorf("--days must be at least 1")
	}
	from, err := ctx.ParseDate(c.From)
	if err != nil {
		return err
	}
	calendarID := ""
	if c.Calendar != "" {
		cal, err := ctx.ResolveCalendar(c.Calendar)
		if err != nil {
			return err
		}
		calendarID = cal.ID
	}

	start, end := agenda.Range(from, c.Days)
	occs, err := ctx.Repos.Events.Occurrences(start, end, calendarID)
	if err != nil {
		return fmt.Errorf("failed to expand events: %w", err)
	}
	if len(occs) == 0 {
		ctx.Println("No occurrences in range")
		return nil
	}

	lookup, err := calendarLookup(ctx)
	if err != nil {
		return err
	}
	for _, occ := range occs {
		ctx.Printf("  %s  %s [%s]  %s\n", formatSpan(occ.Event, ctx.Location), occ.Event.Title, lookup(occ.Event), occ.Key)
	}
	return nil
}
