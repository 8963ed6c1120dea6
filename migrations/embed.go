// Package migrations embeds the versioned schema files for each supported database.
package migrations

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS

// Dir returns the migration files for dialect ("sqlite" or "postgres")
func Dir(dialect string) (fs.FS, error) {
	entries, err := fs.ReadDir(FS, dialect)
	if err != nil || len(entries) == 0 {
		return nil, fmt.Errorf("no embedded migrations for %s", dialect)
	}
	return fs.Sub(FS, dialect)
}
