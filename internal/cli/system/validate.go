package system

import (
	"fmt"
	"strings"

	"github.com/bfsmith/family-calendar/internal/cli"
	"github.com/bfsmith/family-calendar/internal/models"
	"github.com/bfsmith/family-calendar/internal/validation"
)

type ValidateCmd struct {
	Fix bool `help:"Delete orphaned events, chores and completions."`
}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	snap, err := Snapshot(ctx)
	if err != nil {
		return err
	}

	result := validation.New().Validate(snap)
	ctx.Println(strings.TrimRight(result.FormatReport(), "\n"))
	if !result.HasConflicts() {
		return nil
	}

	if !c.Fix {
		return fmt.Errorf("found %d conflict(s)", len(result.Conflicts))
	}

	ctx.PerformAutomaticBackup()
	fixed, err := fixOrphans(ctx, result)
	if err != nil {
		return err
	}
	ctx.Printf("Removed %d orphaned record(s).\n", fixed)
	return nil
}

// Snapshot loads every record the validator inspects.
func Snapshot(ctx *cli.Context) (validation.Snapshot, error) {
	var s validation.Snapshot
	var err error

	if s.Members, err = ctx.Repos.Members.GetAll(); err != nil {
		return s, fmt.Errorf("failed to load members: %w", err)
	}
	if s.Calendars, err = ctx.Repos.Calendars.GetAll(); err != nil {
		return s, fmt.Errorf("failed to load calendars: %w", err)
	}
	if s.Events, err = ctx.Repos.Events.Query(models.EventQuery{}); err != nil {
		return s, fmt.Errorf("failed to load events: %w", err)
	}
	if s.Chores, err = ctx.Repos.Chores.GetAll(); err != nil {
		return s, fmt.Errorf("failed to load chores: %w", err)
	}
	if s.Completions, err = ctx.Repos.Chores.CompletionRecords(); err != nil {
		return s, fmt.Errorf("failed to load completions: %w", err)
	}
	return s, nil
}

func fixOrphans(ctx *cli.Context, result validation.ValidationResult) (int, error) {
	fixed := 0
	for _, c := range result.Conflicts {
		for _, id := range c.IDs {
			var err error
			switch c.Type {
			case validation.ConflictOrphanEvent:
				err = ctx.Repos.Events.Delete(id)
			case validation.ConflictOrphanChore:
				err = ctx.Repos.Chores.Delete(id)
			case validation.ConflictOrphanCompletion:
				err = ctx.Repos.Chores.DeleteCompletion(id)
			default:
				continue
			}
			if err != nil {
				return fixed, fmt.Errorf("failed to remove %s: %w", id, err)
			}
			fixed++
		}
	}
	return fixed, nil
}
