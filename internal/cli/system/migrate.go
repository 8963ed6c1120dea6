package system

import (
	"fmt"

	"github.com/julianstephens/ledger/internal/cli"
	"github.com/julianstephens/ledger/internal/storage"
)

type MigrateCmd struct {
	Status bool `help:"Show the schema version without applying migrations."`
}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	migrator, ok := ctx.Store.(storage.Migrator)
	if !ok {
		return fmt.Errorf("migrate command only supports SQL storage")
	}

	if c.Status {
		status, err := migrator.MigrationStatus()
		if err != nil {
			return fmt.Errorf("failed to read migration status: %w", err)
		}
		ctx.Printf("Schema version: %d (latest %d, %d pending)\n", status.Current, status.Latest, len(status.Pending))
		return nil
	}

	count, err := migrator.Migrate()
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		ctx.Println("No migrations to apply. Database is up to date.")
	} else {
		ctx.Printf("Successfully applied %d migration(s).\n", count)
	}
	return nil
}
