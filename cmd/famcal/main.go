package main

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/bfsmith/family-calendar/internal/cli"
	"github.com/bfsmith/family-calendar/internal/cli/backups"
	"github.com/bfsmith/family-calendar/internal/cli/calendars"
	"github.com/bfsmith/family-calendar/internal/cli/chores"
	"github.com/bfsmith/family-calendar/internal/cli/events"
	"github.com/bfsmith/family-calendar/internal/cli/members"
	"github.com/bfsmith/family-calendar/internal/cli/system"
	"github.com/bfsmith/family-calendar/internal/cli/views"
	"github.com/bfsmith/family-calendar/internal/config"
	"github.com/bfsmith/family-calendar/internal/constants"
	"github.com/bfsmith/family-calendar/internal/errors"
	"github.com/bfsmith/family-calendar/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"string" default:"${config_path}"`
	DB      string `name:"db" help:"Store path (.db for SQLite, .json for JSON) or PostgreSQL connection string. For PostgreSQL, credentials must NOT be embedded; use the keyring or ${env_db} instead." type:"string"`
	Debug   bool   `help:"Log debug output to stderr."`

	Init     system.InitCmd     `cmd:"" help:"Initialize famcal storage."`
	Migrate  system.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Validate system.ValidateCmd `cmd:"" help:"Check stored records for conflicts."`
	DebugCmd system.DebugCmd    `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
	Agenda   views.AgendaCmd    `cmd:"" help:"Show events and chores by day." default:"withargs"`
	Keyring  struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store the PostgreSQL connection string."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string, masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Show where the connection string comes from."`
	} `cmd:"" help:"Manage database credentials in the OS keyring."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage store backups."`
	Member struct {
		Add    members.MemberAddCmd    `cmd:"" help:"Add a family member."`
		List   members.MemberListCmd   `cmd:"" help:"List family members." default:"1"`
		Edit   members.MemberEditCmd   `cmd:"" help:"Edit a family member."`
		Delete members.MemberDeleteCmd `cmd:"" help:"Delete a family member and their chores."`
	} `cmd:"" help:"Manage family members."`
	Calendar struct {
		Add      calendars.CalendarAddCmd      `cmd:"" help:"Add a calendar."`
		List     calendars.CalendarListCmd     `cmd:"" help:"List calendars." default:"1"`
		Edit     calendars.CalendarEditCmd     `cmd:"" help:"Edit a calendar."`
		Delete   calendars.CalendarDeleteCmd   `cmd:"" help:"Delete a calendar and its events."`
		Defaults calendars.CalendarDefaultsCmd `cmd:"" help:"Create the default calendars."`
	} `cmd:"" help:"Manage calendars."`
	Event struct {
		Add         events.EventAddCmd         `cmd:"" help:"Add an event."`
		List        events.EventListCmd        `cmd:"" help:"List stored events." default:"1"`
		Occurrences events.EventOccurrencesCmd `cmd:"" help:"Expand events into occurrences."`
		Edit        events.EventEditCmd        `cmd:"" help:"Edit an event."`
		Delete      events.EventDeleteCmd      `cmd:"" help:"Delete an event."`
		Export      events.EventExportCmd      `cmd:"" help:"Export events as iCalendar."`
	} `cmd:"" help:"Manage events."`
	Chore struct {
		Add        chores.ChoreAddCmd        `cmd:"" help:"Add a chore."`
		List       chores.ChoreListCmd       `cmd:"" help:"List chores." default:"1"`
		Day        chores.ChoreDayCmd        `cmd:"" help:"Show chores due on a day."`
		Complete   chores.ChoreCompleteCmd   `cmd:"" help:"Mark a chore occurrence done."`
		Uncomplete chores.ChoreUncompleteCmd `cmd:"" help:"Mark a chore occurrence not done."`
		Toggle     chores.ChoreToggleCmd     `cmd:"" help:"Flip a chore occurrence between done and not done."`
		History    chores.ChoreHistoryCmd    `cmd:"" help:"Show a chore's completions."`
		Points     chores.ChorePointsCmd     `cmd:"" help:"Total points per member."`
		Edit       chores.ChoreEditCmd       `cmd:"" help:"Edit a chore."`
		Delete     chores.ChoreDeleteCmd     `cmd:"" help:"Delete a chore."`
		Icons      chores.ChoreIconsCmd      `cmd:"" help:"List icon categories."`
	} `cmd:"" help:"Manage chores."`
}

// selfLoading commands open the store themselves, or never touch it.
var selfLoading = []string{"init", "doctor", "keyring", "debug db-path"}

func needsLoad(command string) bool {
	for _, prefix := range selfLoading {
		if command == prefix || strings.HasPrefix(command, prefix+" ") {
			return false
		}
	}
	return true
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Family organizer: shared calendars, recurring events and chores"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": config.DefaultPath(),
			"env_db":      constants.EnvDBConnection,
		},
	)

	configPath := config.ExpandPath(CLI.Config)
	cfg, err := config.Load(configPath)
	if err != nil {
		errors.Fatalf("failed to load config: %v", err)
	}

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug || cfg.Debug,
		ConfigDir: filepath.Dir(configPath),
	}); err != nil {
		errors.Fatalf("failed to initialize logger: %v", err)
	}

	command := ctx.Command()
	store, err := cli.OpenStore(cfg, CLI.DB)
	if err != nil && !strings.HasPrefix(command, "keyring") {
		errors.Fatal(err)
	}

	appCtx, err := cli.NewContext(store, cfg)
	if err != nil {
		errors.Fatal(err)
	}
	appCtx.ConfigPath = configPath

	if needsLoad(command) {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
		defer store.Close()
	}

	logger.Debug("Running command", "command", command)
	errors.Fatal(ctx.Run(appCtx))
}
