package events

import (
	"fmt"
	"io"
	"os"

	"github.com/bfsmith/family-calendar/internal/cli"
	"github.com/bfsmith/family-calendar/internal/ics"
	"github.com/bfsmith/family-calendar/internal/models"
)

type EventExportCmd struct {
	Output   string `short:"o" help:"Write to this file instead of stdout." type:"path"`
	Calendar string `short:"c" help:"Only export this calendar."`
}

func (c *EventExportCmd) Run(ctx *cli.Context) error {
	q := models.EventQuery{}
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
	cals, err := ctx.Repos.Calendars.GetAll()
	if err != nil {
		return fmt.Errorf("failed to get calendars: %w", err)
	}

	var w io.Writer = ctx.Out
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", c.Output, err)
		}
		defer f.Close()
		w = f
	}

	if err := ics.NewExporter(ctx.Location).Export(w, list, cals); err != nil {
		return fmt.Errorf("failed to export events: %w", err)
	}
	if c.Output != "" {
		ctx.Printf("Exported %d events to %s\n", len(list), c.Output)
	}
	return nil
}
