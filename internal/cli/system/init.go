package system

import (
	"fmt"
	"os"

	"github.com/bfsmith/family-calendar/internal/cli"
	"github.com/bfsmith/family-calendar/internal/config"
	"github.com/bfsmith/family-calendar/internal/models"
)

type InitCmd struct {
	Force      bool `help:"Delete the existing store file before initializing."`
	NoDefaults bool `help:"Do not create the default calendars." name:"no-defaults"`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		path := ctx.Store.GetConfigPath()
		if _, err := os.Stat(path); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing store: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing store: %w", err)
			}
			ctx.Printf("Deleted existing store at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing store: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized famcal storage at: %s\n", ctx.Store.GetConfigPath())

	if ctx.ConfigPath != "" {
		if _, err := os.Stat(ctx.ConfigPath); os.IsNotExist(err) {
			if err := config.Save(ctx.ConfigPath, ctx.Config); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			ctx.Printf("Wrote config to: %s\n", ctx.ConfigPath)
		}
	}

	if c.NoDefaults {
		return nil
	}
	return createDefaultCalendars(ctx)
}

// createDefaultCalendars adds the configured calendars unless any calendar
// already exists.
func createDefaultCalendars(ctx *cli.Context) error {
	existing, err := ctx.Repos.Calendars.GetAll()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, def := range ctx.Config.DefaultCalendars {
		cal, err := ctx.Repos.Calendars.Create(models.CreateCalendarInput{Name: def.Name, Color: def.Color})
		if err != nil {
			return fmt.Errorf("failed to create calendar %q: %w", def.Name, err)
		}
		ctx.Printf("Created calendar: %s (%s)\n", cal.Name, cal.Color)
	}
	return nil
}
