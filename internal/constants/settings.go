package constants

const (
	// Preference keys
	SettingTimezone   = "timezone"
	SettingTheme      = "theme"
	SettingAIEnabled  = "ai_enabled"
	SettingAIModel    = "ai_model"
	SettingAutoBackup = "auto_backup"

	// Theme values
	ThemeLight = "light"
	ThemeDark  = "dark"

	// Default preference values
	DefaultTimezone   = "Local" // Use system local timezone by default
	DefaultTheme      = ThemeLight
	DefaultAIEnabled  = true
	DefaultAIModel    = "gemini-2.0-flash"
	DefaultAutoBackup = true
)
