package events

import (
	"fmt"
	"time"

	"github.com/bfsmith/family-calendar/internal/cli"
	"github.com/bfsmith/family-calendar/internal/models"
	"github.com/bfsmith/family-calendar/internal/recurrence"
)

type EventAddCmd struct {
	Title    string `arg:"" help:"Event title."`
	Start    string `short:"s" help:"Start (YYYY-MM-DD HH:MM, or a date for all-day events)." required:""`
	End      string `short:"e" help:"End (YYYY-MM-DD HH:MM). Defaults to one hour after start, or the next day for all-day events."`
	AllDay   bool   `help:"All-day event." name:"all-day"`
	Calendar string `short:"c" help:"Calendar name or ID." required:""`
	Color    string `help:"Colour overriding the calendar's."`

	cli.RecurrenceFlags `embed:""`
}

func (c *EventAddCmd) Run(ctx *cli.Context) error {
	cal, err := ctx.ResolveCalendar(c.Calendar)
	if err != nil {
		return err
	}
	start, end, err := span(ctx, c.Start, c.End, c.AllDay)
	if err != nil {
		return err
	}
	rule, err := c.Rule()
	if err != nil {
		return err
	}

	e, err := ctx.Repos.Events.Create(models.CreateEventInput{
		Title:      c.Title,
		StartTime:  start,
		EndTime:    end,
		AllDay:     c.AllDay,
		Recurring:  rule,
		CalendarID: cal.ID,
		Color:      c.Color,
	})
	if err != nil {
		return fmt.Errorf("failed to add event: %w", err)
	}
	ctx.Printf("Added event: %s (ID: %s)\n", e.Title, e.ID)
	ctx.Printf("  %s, %s\n", formatSpan(e, ctx.Location), cli.FormatRecurrence(e.Recurring))
	return nil
}

// span parses start and end flags. All-day events are aligned to midnight.
func span(ctx *cli.Context, startStr, endStr string, allDay bool) (time.Time, time.Time, error) {
	parse := ctx.ParseDateTime
	if allDay {
		parse = ctx.ParseDate
	}

	start, err := parse(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	var end time.Time
	switch {
	case endStr != "":
		if end, err = parse(endStr); err != nil {
			return time.Time{}, time.Time{}, err
		}
		if allDay {
			end = recurrence.AddDays(end, 1)
		}
	case allDay:
		end = recurrence.AddDays(start, 1)
	default:
		end = start.Add(time.Hour)
	}
	return start, end, nil
}

func formatSpan(e models.Event, loc *time.Location) string {
	e.StartTime, e.EndTime = e.StartTime.In(loc), e.EndTime.In(loc)
	if e.AllDay {
		last := recurrence.AddDays(e.EndTime, -1)
		if !last.After(e.StartTime) {
			return e.StartTime.Format("Mon 2006-01-02") + " all day"
		}
		return fmt.Sprintf("%s - %s all day", e.StartTime.Format("Mon 2006-01-02"), last.Format("Mon 2006-01-02"))
	}
	if recurrence.DaysBetween(e.StartTime, e.EndTime) == 0 {
		return fmt.Sprintf("%s - %s", e.StartTime.Format("Mon 2006-01-02 15:04"), e.EndTime.Format("15:04"))
	}
	return fmt.Sprintf("%s - %s", e.StartTime.Format("Mon 2006-01-02 15:04"), e.EndTime.Format("Mon 2006-01-02 15:04"))
}
