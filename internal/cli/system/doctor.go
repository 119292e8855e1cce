package system

import (
	"fmt"
	"time"

	"github.com/bfsmith/family-calendar/internal/backup"
	"github.com/bfsmith/family-calendar/internal/cli"
	"github.com/bfsmith/family-calendar/internal/constants"
	"github.com/bfsmith/family-calendar/internal/migration"
	"github.com/bfsmith/family-calendar/internal/recurrence"
	"github.com/bfsmith/family-calendar/internal/validation"
)

// migrator is implemented by the SQL-backed stores.
type migrator interface {
	MigrationStatus() (migration.Status, error)
}

type check struct {
	name string
	// needsStore checks are skipped when the store cannot be loaded.
	needsStore bool
	// warnOnly failures do not fail the command.
	warnOnly bool
	run      func(*cli.Context) error
}

var checks = []check{
	{name: "Store reachable", run: checkStoreReachable},
	{name: "Schema version", needsStore: true, run: checkSchemaVersion},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
	{name: "Data validation", needsStore: true, run: checkValidation},
	{name: "Recurrence expansion", needsStore: true, run: checkExpansion},
	{name: "Clock/timezone", run: checkClockTimezone},
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	storeOK := true
	for i, c := range checks {
		if c.needsStore && !storeOK {
			ctx.Printf("⊘ %s: SKIPPED (store not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
			if i == 0 {
				storeOK = false
			}
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load store: %w", err)
	}
	if _, err := ctx.Store.GetAll(constants.CollectionCalendars); err != nil {
		return fmt.Errorf("failed to read store: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		// The JSON store has no schema.
		return nil
	}
	status, err := m.MigrationStatus()
	if err != nil {
		return err
	}
	if status.Current > status.Latest {
		return fmt.Errorf("schema version (%d) is newer than supported version (%d)", status.Current, status.Latest)
	}
	if !status.UpToDate() {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", status.Current, status.Latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if !ctx.IsFileStore() {
		return fmt.Errorf("backups are only kept for file stores")
	}
	backups, err := backup.NewManager(ctx.Store.GetConfigPath()).List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with '%s backup create'", constants.AppName)
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
	snap, err := Snapshot(ctx)
	if err != nil {
		return err
	}
	result := validation.New().Validate(snap)
	if result.HasConflicts() {
		return fmt.Errorf("%d conflict(s); run '%s validate' for details", len(result.Conflicts), constants.AppName)
	}
	return nil
}

// checkExpansion expands the coming week and checks every occurrence key
// round-trips to its base record.
func checkExpansion(ctx *cli.Context) error {
	start := ctx.Today()
	end := recurrence.AddDays(start, constants.DaysPerWeek)

	occs, err := ctx.Repos.Events.Occurrences(start, end, "")
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(occs))
	for _, o := range occs {
		key := o.Key.String()
		if seen[key] {
			return fmt.Errorf("duplicate occurrence key %s", key)
		}
		seen[key] = true
		if parsed := recurrence.ParseKey(key); parsed.BaseID != o.Event.ID {
			return fmt.Errorf("occurrence key %s does not resolve to event %s", key, o.Event.ID)
		}
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := ctx.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if _, err := ctx.Config.Location(); err != nil {
		return err
	}
	return nil
}
