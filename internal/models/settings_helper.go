package models

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/ledger/internal/constants"
)

// DefaultSettings returns the preferences used for a freshly initialized store.
func DefaultSettings() Settings {
	return Settings{
		Timezone:   constants.DefaultTimezone,
		Theme:      constants.DefaultTheme,
		AIEnabled:  constants.DefaultAIEnabled,
		AIModel:    constants.DefaultAIModel,
		AutoBackup: constants.DefaultAutoBackup,
	}
}

// MapToSettings converts a map of key-value pairs to a Settings struct.
// Keys that are absent keep their default value.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := DefaultSettings()

	for key, value := range data {
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingTheme:
			settings.Theme = value
		case constants.SettingAIEnabled:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			settings.AIEnabled = b
		case constants.SettingAIModel:
			settings.AIModel = value
		case constants.SettingAutoBackup:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			settings.AutoBackup = b
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone:   settings.Timezone,
		constants.SettingTheme:      settings.Theme,
		constants.SettingAIEnabled:  strconv.FormatBool(settings.AIEnabled),
		constants.SettingAIModel:    settings.AIModel,
		constants.SettingAutoBackup: strconv.FormatBool(settings.AutoBackup),
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.Theme == "" {
		settings.Theme = constants.DefaultTheme
	}
	if settings.AIModel == "" {
		settings.AIModel = constants.DefaultAIModel
	}
}
