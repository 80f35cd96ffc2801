package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/daymood/internal/cli"
	"github.com/julianstephens/daymood/internal/cli/habits"
	"github.com/julianstephens/daymood/internal/cli/insights"
	"github.com/julianstephens/daymood/internal/cli/journal"
	"github.com/julianstephens/daymood/internal/cli/settings"
	"github.com/julianstephens/daymood/internal/cli/system"
	"github.com/julianstephens/daymood/internal/config"
	"github.com/julianstephens/daymood/internal/constants"
	"github.com/julianstephens/daymood/internal/errors"
	"github.com/julianstephens/daymood/internal/identity"
	"github.com/julianstephens/daymood/internal/logger"
	"github.com/julianstephens/daymood/internal/scheduler"
	"github.com/julianstephens/daymood/internal/utils"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Data file path, PostgreSQL connection string, or 'keyring'. For PostgreSQL, credentials must NOT be embedded in the connection string. Use environment variables, .pgpass, or OS keyring instead." type:"string" env:"DAYMOOD_CONFIG" default:"${default_config}"`
	User     string `help:"Act as this user instead of the signed-in one." env:"DAYMOOD_USER"`
	Timezone string `help:"IANA timezone used to decide what 'today' is." env:"DAYMOOD_TIMEZONE" default:"Local"`
	Date     string `help:"Work on this date (YYYY-MM-DD) instead of today."`
	Debug    bool   `help:"Log debug output to stderr." env:"DAYMOOD_DEBUG"`

	Init     system.InitCmd     `cmd:"" help:"Initialize daymood storage."`
	Migrate  system.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Validate system.ValidateCmd `cmd:"" help:"Check stored data for conflicts."`
	Watch    system.WatchCmd    `cmd:"" help:"Stay running and show the evening summary when it is due."`
	Keyring  system.KeyringCmd  `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Signin   system.SigninCmd   `cmd:"" help:"Sign in as a user."`
	Signout  system.SignoutCmd  `cmd:"" help:"Sign out."`
	Whoami   system.WhoamiCmd   `cmd:"" help:"Show the current user."`

	Habit habits.HabitCmd   `cmd:"" help:"Manage habits and habit tracking." default:"1"`
	Mood  journal.MoodCmd   `cmd:"" help:"Record or show the day's mood color."`
	Diary journal.DiaryCmd  `cmd:"" help:"Write or list diary entries."`
	Stats insights.StatsCmd `cmd:"" help:"Show completion stats for the day."`
	Week  insights.WeekCmd  `cmd:"" help:"Show a week at a glance."`

	Achievements insights.AchievementsCmd `cmd:"" help:"List unlocked achievements."`
	Export       insights.ExportCmd       `cmd:"" help:"Export a plain-text progress report."`
	Settings     settings.SettingsCmd     `cmd:"" help:"Manage application settings."`
}

// storageless commands only touch the keyring.
var storageless = map[string]bool{
	"signin":  true,
	"signout": true,
	"whoami":  true,
	"keyring": true,
}

func main() {
	// .env files must be loaded before kong reads env-backed flags
	if _, err := config.LoadEnv(config.EnvPaths()...); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit tracker with daily mood colors, a diary, streaks and achievements"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"default_config": constants.DefaultConfigPath,
			"evening_cron":   constants.EveningSummaryCronSpec,
		},
	)

	if err := run(ctx); err != nil {
		errors.Report(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx *kong.Context) error {
	command := topCommand(ctx.Selected())

	logDir, err := config.DataDir(CLI.Config)
	if err != nil {
		return err
	}
	if err := logger.Init(loggerConfig(command, CLI.Debug, logDir)); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	loc, err := utils.LoadLocation(CLI.Timezone)
	if err != nil {
		return err
	}
	if CLI.Date != "" && !utils.ValidateDate(CLI.Date) {
		return fmt.Errorf("invalid --date %q, expected YYYY-MM-DD", CLI.Date)
	}

	appCtx := &cli.Context{
		Resolver: identity.NewResolver(CLI.User),
		Clock:    scheduler.SystemClock{},
		Location: loc,
		Date:     CLI.Date,
		Out:      os.Stdout,
	}

	if !storageless[command] {
		store, err := cli.OpenProvider(CLI.Config)
		if err != nil {
			return err
		}
		defer store.Close()
		appCtx.Store = store

		// Init handles its own loading
		if command != "init" {
			if err := store.Load(); err != nil {
				return err
			}
		}
	}

	logger.Debug("Running command", "command", command, "config", CLI.Config)
	return ctx.Run(appCtx)
}

// topCommand names the top-level command a selected node belongs to.
func topCommand(node *kong.Node) string {
	if node == nil {
		return ""
	}
	command := node.Name
	for parent := node.Parent; parent != nil && parent.Parent != nil; parent = parent.Parent {
		command = parent.Name
	}
	return command
}

// loggerConfig mirrors records to stderr for watch, which runs in the
// foreground with no other output between checks. --debug already does.
func loggerConfig(command string, debug bool, dir string) logger.Config {
	cfg := logger.Config{Debug: debug, ConfigDir: dir}
	if command == "watch" && !debug {
		cfg.Extra = os.Stderr
	}
	return cfg
}
