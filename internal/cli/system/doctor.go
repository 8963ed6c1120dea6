package system

import (
	"fmt"
	"time"

	"github.com/julianstephens/ledger/internal/backup"
	"github.com/julianstephens/ledger/internal/cli"
	"github.com/julianstephens/ledger/internal/constants"
	"github.com/julianstephens/ledger/internal/keyring"
	"github.com/julianstephens/ledger/internal/storage"
	"github.com/julianstephens/ledger/internal/utils"
)

type DoctorCmd struct{}

type check struct {
	name string
	// needsDB checks are skipped when the store cannot be loaded
	needsDB bool
	// warnOnly checks print a warning instead of failing
	warnOnly bool
	run      func(ctx *cli.Context) error
}

var checks = []check{
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
	{name: "Entry integrity", needsDB: true, run: checkEntries},
	{name: "Timestamp integrity", needsDB: true, run: checkTimestamps},
	{name: "Clock/timezone", needsDB: true, run: checkClockTimezone},
	{name: "AI enrichment", warnOnly: true, run: checkAI},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := true
	if err := ctx.Store.Load(); err != nil {
		ctx.Printf("❌ Database reachable: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
		dbReachable = false
	} else {
		ctx.Printf("✓ Database reachable: OK\n")
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
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

func checkSchemaVersion(ctx *cli.Context) error {
	migrator, ok := ctx.Store.(storage.Migrator)
	if !ok {
		// JSON store has no schema version
		return nil
	}
	status, err := migrator.MigrationStatus()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if status.Current > status.Latest {
		return fmt.Errorf("database schema version (%d) is newer than supported (%d); upgrade ledger", status.Current, status.Latest)
	}
	if len(status.Pending) > 0 {
		return fmt.Errorf("%d pending migration(s); run 'ledger migrate'", len(status.Pending))
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if !ctx.IsFileBacked() {
		return fmt.Errorf("backups are not managed for PostgreSQL storage")
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	latest, ok, err := mgr.Latest()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if !ok {
		return fmt.Errorf("no backups found in %s", mgr.GetBackupDir())
	}
	if age := time.Since(latest.Timestamp); age > 7*24*time.Hour {
		return fmt.Errorf("latest backup is %d days old", int(age.Hours()/24))
	}
	return nil
}

func checkEntries(ctx *cli.Context) error {
	entries, err := ctx.Store.GetAllEntries()
	if err != nil {
		return fmt.Errorf("failed to get entries: %w", err)
	}
	seen := make(map[string]bool, len(entries))
	ids := make(map[string]string, len(entries))
	for _, e := range entries {
		if !utils.ValidateDateFormat(e.Date) {
			return fmt.Errorf("entry %s has an invalid date %q", e.ID, e.Date)
		}
		if seen[e.Date] {
			return fmt.Errorf("more than one entry for %s", e.Date)
		}
		seen[e.Date] = true
		if e.EffortRating < constants.EffortMin || e.EffortRating > constants.EffortMax {
			return fmt.Errorf("entry %s has effort rating %d", e.Date, e.EffortRating)
		}
		if e.ID == "" {
			return fmt.Errorf("entry %s has no id", e.Date)
		}
		if other, dup := ids[e.ID]; dup {
			return fmt.Errorf("entries %s and %s share id %s", other, e.Date, e.ID)
		}
		ids[e.ID] = e.Date
	}
	return nil
}

func checkTimestamps(ctx *cli.Context) error {
	entries, err := ctx.Store.GetAllEntries()
	if err != nil {
		return fmt.Errorf("failed to get entries: %w", err)
	}
	for _, e := range entries {
		if e.CreatedAt <= 0 {
			return fmt.Errorf("entry %s has no creation time", e.Date)
		}
		if e.UpdatedAt < e.CreatedAt {
			return fmt.Errorf("entry %s was updated before it was created", e.Date)
		}
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	if !utils.ValidateTimezone(settings.Timezone) {
		return fmt.Errorf("invalid timezone %q in settings", settings.Timezone)
	}
	now := time.Now()
	if now.Year() < 2020 {
		return fmt.Errorf("system clock looks wrong: %s", now.Format(time.RFC3339))
	}
	return nil
}

func checkAI(ctx *cli.Context) error {
	if keyring.ResolveAPIKey() == "" {
		return fmt.Errorf("no API key; set %s or run 'ledger keyring set-api-key'", constants.EnvGeminiAPIKey)
	}
	return nil
}
