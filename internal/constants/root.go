package constants

const (
	AppName            = "ledger"
	DefaultKeyringUser = "database-connection"
	AIKeyringUser      = "gemini-api-key"
	DefaultConfigPath  = "~/.config/ledger/ledger.db"
	DefaultYAMLPath    = "~/.config/ledger/config.yaml"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Environment variables
	EnvDBConnection = "LEDGER_DB_CONNECTION"
	EnvGeminiAPIKey = "LEDGER_GEMINI_API_KEY"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "ledger-"
	BackupFileSuffix = ".db"

	// LegacyStorageKey is the key the browser build used for its localStorage payload.
	// JSON stores written under this name are read as a bare entry array.
	LegacyStorageKey = "daily_execution_ledger_v1"
)
