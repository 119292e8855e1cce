package calendars

import (
	"fmt"

	"github.com/bfsmith/family-calendar/internal/agenda"
	"github.com/bfsmith/family-calendar/internal/cli"
	"github.com/bfsmith/family-calendar/internal/models"
)

type CalendarAddCmd struct {
	Name  string `arg:"" help:"Calendar name."`
	Color string `short:"c" help:"Theme name or hex colour." default:"neutral"`
}

func (c *CalendarAddCmd) Run(ctx *cli.Context) error {
	cal, err := ctx.Repos.Calendars.Create(models.CreateCalendarInput{Name: c.Name, Color: c.Color})
	if err != nil {
		return fmt.Errorf("failed to add calendar: %w", err)
	}
	ctx.Printf("Added calendar: %s (ID: %s)\n", cal.Name, cal.ID)
	return nil
}

type CalendarListCmd struct {
	ShowIDs bool `help:"Show calendar IDs." name:"show-ids"`
}

func (c *CalendarListCmd) Run(ctx *cli.Context) error {
	all, err := ctx.Repos.Calendars.GetAll()
	if err != nil {
		return fmt.Errorf("failed to get calendars: %w", err)
	}
	if len(all) == 0 {
		ctx.Println("No calendars found. Run 'famcal calendar defaults' to create the standard ones.")
		return nil
	}

	events, err := ctx.Repos.Events.Query(models.EventQuery{})
	if err != nil {
		return fmt.Errorf("failed to get events: %w", err)
	}
	counts := make(map[string]int, len(all))
	for _, e := range events {
		counts[e.CalendarID]++
	}

	ctx.Println("Calendars:")
	for _, cal := range all {
		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", cal.ID)
		}
		ctx.Printf("  %s%s - %s, %d events\n", agenda.Swatch(cal.Name, cal.Color), idStr, cal.Color, counts[cal.ID])
	}
	return nil
}

type CalendarEditCmd struct {
	Calendar string  `arg:"" help:"Calendar name or ID."`
	Name     *string `help:"New name."`
	Color    *string `short:"c" help:"New colour."`
}

func (c *CalendarEditCmd) Run(ctx *cli.Context) error {
	cal, err := ctx.ResolveCalendar(c.Calendar)
	if err != nil {
		return err
	}
	if c.Name == nil && c.Color == nil {
		return fmt.Errorf("nothing to change; pass --name or --color")
	}

	updated, err := ctx.Repos.Calendars.Update(models.UpdateCalendarInput{ID: cal.ID, Name: c.Name, Color: c.Color})
	if err != nil {
		return fmt.Errorf("failed to update calendar: %w", err)
	}
	ctx.Printf("Updated calendar: %s\n", updated.Name)
	return nil
}

type CalendarDeleteCmd struct {
	Calendar string `arg:"" help:"Calendar name or ID."`
	Yes      bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *CalendarDeleteCmd) Run(ctx *cli.Context) error {
	cal, err := ctx.ResolveCalendar(c.Calendar)
	if err != nil {
		return err
	}

	if !c.Yes {
		ok, err := ctx.Confirm(fmt.Sprintf("Delete calendar %s and every event on it?", cal.Name))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.Repos.Calendars.Delete(cal.ID); err != nil {
		return fmt.Errorf("failed to delete calendar: %w", err)
	}
	ctx.Printf("Deleted calendar: %s (ID: %s)\n", cal.Name, cal.ID)
	return nil
}

type CalendarDefaultsCmd struct{}

func (c *CalendarDefaultsCmd) Run(ctx *cli.Context) error {
	created, err := ctx.Repos.Calendars.CreateDefaults()
	if err != nil {
		return fmt.Errorf("failed to create default calendars: %w", err)
	}
	if len(created) == 0 {
		ctx.Println("Calendars already exist; nothing created.")
		return nil
	}
	for _, cal := range created {
		ctx.Printf("Created calendar: %s (%s)\n", cal.Name, cal.Color)
	}
	return nil
}
