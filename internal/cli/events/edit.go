package events

import (
	"fmt"

	"github.com/bfsmith/family-calendar/internal/cli"
	"github.com/bfsmith/family-calendar/internal/constants"
	"github.com/bfsmith/family-calendar/internal/models"
)

type EventEditCmd struct {
	Event    string  `arg:"" help:"Event ID, occurrence key or title."`
	Title    *string `help:"New title."`
	Start    *string `short:"s" help:"New start (YYYY-MM-DD HH:MM). The duration is kept unless --end is given."`
	End      *string `short:"e" help:"New end (YYYY-MM-DD HH:MM)."`
	AllDay   *bool   `help:"Set all-day status." name:"all-day"`
	Calendar *string `short:"c" help:"Move to another calendar."`
	Color    *string `help:"New colour override; empty clears it."`
	NoRepeat bool    `help:"Remove the recurrence rule." name:"no-repeat"`

	cli.RecurrenceFlags `embed:""`
}

func (c *EventEditCmd) Run(ctx *cli.Context) error {
	e, err := ctx.ResolveEvent(c.Event)
	if err != nil {
		return err
	}

	in := models.UpdateEventInput{
		ID:             e.ID,
		Title:          c.Title,
		AllDay:         c.AllDay,
		Color:          c.Color,
		ClearRecurring: c.NoRepeat,
	}

	allDay := e.AllDay
	if c.AllDay != nil {
		allDay = *c.AllDay
	}
	if c.Start != nil {
		end := ""
		if c.End != nil {
			end = *c.End
		}
		start, stop, err := span(ctx, *c.Start, end, allDay)
		if err != nil {
			return err
		}
		if end == "" && !allDay {
			stop = start.Add(e.Duration())
		}
		in.StartTime, in.EndTime = &start, &stop
	} else if c.End != nil {
		layout := constants.DateTimeFormat
		if allDay {
			layout = constants.DateFormat
		}
		_, stop, err := span(ctx, e.StartTime.In(ctx.Location).Format(layout), *c.End, allDay)
		if err != nil {
			return err
		}
		in.EndTime = &stop
	}

	if c.Calendar != nil {
		cal, err := ctx.ResolveCalendar(*c.Calendar)
		if err != nil {
			return err
		}
		in.CalendarID = &cal.ID
	}
	if c.Set() {
		rule, err := c.Rule()
		if err != nil {
			return err
		}
		if rule == nil {
			in.ClearRecurring = true
		}
		in.Recurring = rule
	}

	updated, err := ctx.Repos.Events.Update(in)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	ctx.Printf("Updated event: %s\n", updated.Title)
	ctx.Printf("  %s, %s\n", formatSpan(updated, ctx.Location), cli.FormatRecurrence(updated.Recurring))
	return nil
}

type EventDeleteCmd struct {
	Event string `arg:"" help:"Event ID, occurrence key or title."`
	Yes   bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *EventDeleteCmd) Run(ctx *cli.Context) error {
	e, err := ctx.ResolveEvent(c.Event)
	if err != nil {
		return err
	}

	if !c.Yes && e.Recurring != nil {
		ok, err := ctx.Confirm(fmt.Sprintf("%s repeats %s. Delete every occurrence?", e.Title, cli.FormatRecurrence(e.Recurring)))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Cancelled.")
			return nil
		}
	}

	if err := ctx.Repos.Events.Delete(e.ID); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	ctx.Printf("Deleted event: %s (ID: %s)\n", e.Title, e.ID)
	return nil
}
