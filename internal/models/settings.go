package models

// Settings holds the user's persisted preferences
type Settings struct {
	Timezone   string `json:"timezone"`    // IANA timezone name (e.g. "America/New_York", or "Local" for system timezone)
	Theme      string `json:"theme"`       // "light" or "dark"
	AIEnabled  bool   `json:"ai_enabled"`  // whether enrichment calls are made
	AIModel    string `json:"ai_model"`    // generative model name
	AutoBackup bool   `json:"auto_backup"` // whether a backup is taken before interactive sessions
}
