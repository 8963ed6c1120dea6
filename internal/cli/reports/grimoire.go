package reports

import (
	"fmt"

	"github.com/julianstephens/ledger/internal/cli"
	"github.com/julianstephens/ledger/internal/insights"
)

// GrimoireCmd lists the code snippets found in entries
type GrimoireCmd struct {
	Filter string `help:"Only snippets whose code or language contains this text." short:"f"`
	Kind   string `help:"Only scrolls (short) or tomes (long)." enum:",scroll,tome" default:""`
	Show   string `help:"Print the snippet with this id."`
}

func (c *GrimoireCmd) Run(ctx *cli.Context) error {
	entries, err := ctx.Service.Entries()
	if err != nil {
		return err
	}
	snippets := insights.FilterSnippets(insights.Harvest(entries), c.Filter)

	if c.Show != "" {
		for _, s := range snippets {
			if s.ID == c.Show {
				ctx.Printf("```%s\n%s\n```\n", s.Language, s.Code)
				return nil
			}
		}
		return fmt.Errorf("no snippet with id %s", c.Show)
	}

	shown := 0
	for _, s := range snippets {
		if c.Kind != "" && string(s.Kind) != c.Kind {
			continue
		}
		ctx.Printf("%-14s %-6s %-8s %-18s %d lines\n", s.ID, s.Kind, s.Language, insights.School(s.Language), s.Lines)
		shown++
	}
	if shown == 0 {
		ctx.Println("The grimoire is empty.")
	}
	return nil
}
