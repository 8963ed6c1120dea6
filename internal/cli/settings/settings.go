package settings

import (
	"fmt"
	"strings"

	"github.com/julianstephens/ledger/internal/cli"
	"github.com/julianstephens/ledger/internal/constants"
	"github.com/julianstephens/ledger/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone   *string `help:"IANA timezone used to decide what today is, or Local."`
	Theme      *string `help:"Display theme: light or dark."`
	AIEnabled  *bool   `help:"Enable or disable AI enrichment." name:"ai-enabled"`
	AIModel    *string `help:"Generative model used for enrichment." name:"ai-model"`
	AutoBackup *bool   `help:"Back up the store automatically when the TUI starts."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}

	if c.List {
		ctx.Println("Current Settings:")
		ctx.Printf("  Timezone:    %s\n", settings.Timezone)
		ctx.Printf("  Theme:       %s\n", settings.Theme)
		ctx.Printf("  AI Enabled:  %v\n", settings.AIEnabled)
		ctx.Printf("  AI Model:    %s\n", settings.AIModel)
		ctx.Printf("  Auto Backup: %v\n", settings.AutoBackup)
		return nil
	}

	updated := false
	if c.Timezone != nil {
		tz := strings.TrimSpace(*c.Timezone)
		if !utils.ValidateTimezone(tz) {
			return fmt.Errorf("invalid timezone: %s", tz)
		}
		settings.Timezone = tz
		updated = true
	}
	if c.Theme != nil {
		theme := strings.ToLower(strings.TrimSpace(*c.Theme))
		if theme != constants.ThemeLight && theme != constants.ThemeDark {
			return fmt.Errorf("invalid theme %q, expected light or dark", *c.Theme)
		}
		settings.Theme = theme
		updated = true
	}
	if c.AIEnabled != nil {
		settings.AIEnabled = *c.AIEnabled
		updated = true
	}
	if c.AIModel != nil {
		model := strings.TrimSpace(*c.AIModel)
		if model == "" {
			return fmt.Errorf("AI model cannot be empty")
		}
		settings.AIModel = model
		updated = true
	}
	if c.AutoBackup != nil {
		settings.AutoBackup = *c.AutoBackup
		updated = true
	}

	if !updated {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.Println("Settings updated successfully.")
	return nil
}
