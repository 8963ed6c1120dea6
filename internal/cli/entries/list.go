package entries

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/ledger/internal/cli"
	"github.com/julianstephens/ledger/internal/models"
)

// ListCmd lists entries, optionally within a date range
type ListCmd struct {
	From string `help:"First date to include (YYYY-MM-DD)."`
	To   string `help:"Last date to include (YYYY-MM-DD)."`
	JSON bool   `help:"Print entries as JSON." name:"json"`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	var (
		list []models.Entry
		err  error
	)
	if c.From == "" && c.To == "" {
		list, err = ctx.Service.Entries()
	} else {
		from, to := c.From, c.To
		if from == "" {
			from = "0001-01-01"
		}
		if to == "" {
			if to, err = ctx.Service.Today(); err != nil {
				return err
			}
		}
		list, err = ctx.Service.EntriesBetween(from, to)
	}
	if err != nil {
		return err
	}

	if c.JSON {
		data, err := json.MarshalIndent(list, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode entries: %w", err)
		}
		ctx.Println(string(data))
		return nil
	}

	if len(list) == 0 {
		ctx.Println("No entries found.")
		return nil
	}
	for _, e := range list {
		ctx.Println(describe(e))
	}
	ctx.Printf("\n%d entries\n", len(list))
	return nil
}
