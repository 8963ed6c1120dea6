package main

import (
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/ledger/internal/cli"
	"github.com/julianstephens/ledger/internal/cli/backups"
	"github.com/julianstephens/ledger/internal/cli/entries"
	"github.com/julianstephens/ledger/internal/cli/reports"
	"github.com/julianstephens/ledger/internal/cli/settings"
	"github.com/julianstephens/ledger/internal/cli/system"
	"github.com/julianstephens/ledger/internal/config"
	"github.com/julianstephens/ledger/internal/constants"
	"github.com/julianstephens/ledger/internal/errors"
	"github.com/julianstephens/ledger/internal/keyring"
	"github.com/julianstephens/ledger/internal/logger"
	"github.com/julianstephens/ledger/internal/storage"
	"github.com/julianstephens/ledger/internal/storage/postgres"
	"github.com/julianstephens/ledger/internal/utils"
)

var CLI struct {
	Version      kong.VersionFlag
	Config       string `help:"Store path (SQLite .db or .json file) or PostgreSQL connection string. PostgreSQL credentials must NOT be embedded in the string; use the OS keyring, environment variables or .pgpass instead." type:"string" default:"~/.config/ledger/ledger.db" env:"LEDGER_DB_CONNECTION"`
	SettingsFile string `name:"settings" help:"YAML settings file with validation limits, server and AI options." type:"string" default:"~/.config/ledger/config.yaml"`
	Debug        bool   `help:"Write debug logs to stderr as well as the log file."`

	Init    system.InitCmd    `cmd:"" help:"Initialize ledger storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Serve   system.ServeCmd   `cmd:"" help:"Serve the ledger as a local JSON API."`

	Log    entries.LogCmd    `cmd:"" help:"Write or update the entry for a day."`
	Quest  entries.QuestCmd  `cmd:"" help:"Set or generate tomorrow's quest."`
	Show   entries.ShowCmd   `cmd:"" help:"Show the entry for a day."`
	List   entries.ListCmd   `cmd:"" help:"List entries."`
	Search entries.SearchCmd `cmd:"" help:"Search entry text."`
	Tags   entries.TagsCmd   `cmd:"" help:"Suggest hashtags for a piece of text."`
	Export entries.ExportCmd `cmd:"" help:"Export entries as JSON."`
	Import entries.ImportCmd `cmd:"" help:"Import entries from a JSON export."`

	Stats    reports.StatsCmd    `cmd:"" help:"Show streaks and completion."`
	Calendar reports.CalendarCmd `cmd:"" help:"Show a month heat map."`
	Skills   reports.SkillsCmd   `cmd:"" help:"Show hashtag skills and levels."`
	Badges   reports.BadgesCmd   `cmd:"" help:"Show unlocked badges."`
	Leaks    reports.LeaksCmd    `cmd:"" help:"Show the month's top time leaks."`
	Grimoire reports.GrimoireCmd `cmd:"" help:"Browse code snippets from your logs."`

	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Keyring  struct {
		Set          system.KeyringSetCmd          `cmd:"" help:"Store the PostgreSQL connection string."`
		Get          system.KeyringGetCmd          `cmd:"" help:"Show the stored connection string (password masked)."`
		Delete       system.KeyringDeleteCmd       `cmd:"" help:"Remove the stored connection string."`
		Status       system.KeyringStatusCmd       `cmd:"" help:"Show keyring availability and stored secrets."`
		SetAPIKey    system.KeyringSetAPIKeyCmd    `cmd:"" name:"set-api-key" help:"Store the Gemini API key."`
		DeleteAPIKey system.KeyringDeleteAPIKeyCmd `cmd:"" name:"delete-api-key" help:"Remove the stored Gemini API key."`
	} `cmd:"" help:"Manage secrets in the OS keyring."`
}

// openStore picks the backend for config. The default path defers to a
// connection string saved in the keyring, which may carry credentials.
func openStore(config string) (storage.Provider, error) {
	if config == constants.DefaultConfigPath {
		if connStr, err := keyring.GetConnectionString(); err == nil && connStr != "" {
			logger.Debug("Using connection string from keyring")
			return postgres.New(connStr), nil
		}
	}
	return storage.New(utils.ExpandPath(config))
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Daily execution ledger: log what you shipped, learned and lost"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	settingsPath := utils.ExpandPath(CLI.SettingsFile)
	cfg, err := config.Load(settingsPath)
	if err != nil {
		errors.Fatal(err)
	}

	if err := logger.Init(logger.Options{Dir: filepath.Dir(settingsPath), Debug: CLI.Debug, File: cfg.Log}); err != nil {
		errors.Fatalf("failed to initialize logger: %v", err)
	}

	store, err := openStore(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}

	// Init handles its own loading
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}

	appCtx := cli.NewContext(store, cfg)
	logger.Debug("Running command", "command", ctx.Command(), "store", store.GetConfigPath())

	err = ctx.Run(appCtx)
	if closeErr := store.Close(); closeErr != nil {
		logger.Warn("Failed to close store", "error", closeErr)
	}
	errors.Fatal(err)
}
