package storage

import "github.com/julianstephens/ledger/internal/models"

// Provider is the persistence contract shared by the JSON, SQLite and
// PostgreSQL backends. Entries are keyed by date; there is no delete.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Entries
	// GetEntry returns errors.ErrNotFound when date has no entry.
	GetEntry(date string) (models.Entry, error)
	// GetAllEntries returns every entry in ascending date order.
	GetAllEntries() ([]models.Entry, error)
	// GetEntries returns entries with startDay <= date <= endDay in ascending order.
	GetEntries(startDay, endDay string) ([]models.Entry, error)
	// SaveEntry inserts or replaces the entry for entry.Date.
	SaveEntry(models.Entry) error

	// Utils
	GetConfigPath() string
}
