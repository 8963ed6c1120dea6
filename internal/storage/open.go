package storage

import (
	"errors"

	"github.com/julianstephens/ledger/internal/migration"
	"github.com/julianstephens/ledger/internal/storage/jsonstore"
	"github.com/julianstephens/ledger/internal/storage/postgres"
	"github.com/julianstephens/ledger/internal/storage/sqlite"
)

// ErrEmbeddedCredentials is returned by New for PostgreSQL strings carrying a password
var ErrEmbeddedCredentials = postgres.ErrEmbeddedCredentials

// Migrator is implemented by the SQL backends
type Migrator interface {
	Migrate() (int, error)
	MigrationStatus() (migration.Status, error)
}

// New builds the Provider selected by config without opening it.
// config must already have "~" expanded.
func New(config string) (Provider, error) {
	switch DetectKind(config) {
	case KindPostgres:
		if HasEmbeddedCredentials(config) {
			return nil, ErrEmbeddedCredentials
		}
		return postgres.New(config), nil
	case KindJSON:
		return jsonstore.NewStore(config), nil
	default:
		if config == "" {
			return nil, errors.New("no storage path configured")
		}
		return sqlite.NewStore(config), nil
	}
}

var (
	_ Provider = (*sqlite.Store)(nil)
	_ Provider = (*postgres.Store)(nil)
	_ Provider = (*jsonstore.Store)(nil)
	_ Migrator = (*sqlite.Store)(nil)
	_ Migrator = (*postgres.Store)(nil)
)
