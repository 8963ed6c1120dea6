package entries

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/ledger/internal/cli"
	"github.com/julianstephens/ledger/internal/models"
	"github.com/julianstephens/ledger/internal/storage/jsonstore"
)

// ExportCmd writes every entry as a JSON array, the layout of the browser
// build's localStorage payload.
type ExportCmd struct {
	Output   string `help:"File to write. Defaults to stdout." short:"o" type:"path"`
	Document bool   `help:"Wrap the entries and settings in a versioned document."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	list, err := ctx.Service.Entries()
	if err != nil {
		return err
	}

	if list == nil {
		list = []models.Entry{}
	}
	var payload interface{} = list
	if c.Document {
		payload = jsonstore.Document{Version: 1, Settings: settings, Entries: list}
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	data = append(data, '\n')

	if c.Output == "" {
		_, err = ctx.Stdout().Write(data)
		return err
	}
	if err := os.WriteFile(c.Output, data, 0600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	ctx.Printf("✓ Exported %d entries to %s\n", len(list), c.Output)
	return nil
}

// ImportCmd loads entries from an export or a raw browser localStorage array
type ImportCmd struct {
	File         string `arg:"" help:"JSON file to import, or - for stdin."`
	WithSettings bool   `help:"Also replace settings with the ones in the file."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	var (
		data []byte
		err  error
	)
	if c.File == "-" {
		data, err = io.ReadAll(ctx.Stdin())
	} else {
		data, err = os.ReadFile(c.File)
	}
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	doc, err := jsonstore.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to parse import file: %w", err)
	}

	result, err := ctx.Service.Import(doc.Entries)
	if err != nil {
		return err
	}
	if c.WithSettings {
		if err := ctx.Store.SaveSettings(doc.Settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
	}
	ctx.Printf("✓ Imported %d entries (%d new, %d replaced)\n", len(doc.Entries), result.Created, result.Updated)
	return nil
}
