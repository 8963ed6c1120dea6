package entries

import (
	"context"
	"strings"

	"github.com/julianstephens/ledger/internal/cli"
	"github.com/julianstephens/ledger/internal/insights"
)

// SearchCmd finds entries containing text
type SearchCmd struct {
	Query string `arg:"" help:"Text to search for, case-insensitive."`
}

func (c *SearchCmd) Run(ctx *cli.Context) error {
	list, err := ctx.Service.Entries()
	if err != nil {
		return err
	}
	matches := insights.Search(list, c.Query)
	if len(matches) == 0 {
		ctx.Println("No matches.")
		return nil
	}
	for _, m := range matches {
		snippet := strings.TrimSpace(strings.SplitN(m.Snippet, "\n", 2)[0])
		ctx.Printf("%s  [%s]  %s\n", m.Date, strings.Join(m.Sources, ","), snippet)
	}
	return nil
}

// TagsCmd asks the AI for hashtags describing text or a day's work log
type TagsCmd struct {
	Text string `arg:"" optional:"" help:"Text to tag. Defaults to the work log of --date."`
	Date string `help:"Entry whose work log is tagged (YYYY-MM-DD). Defaults to today." short:"d"`
}

func (c *TagsCmd) Run(ctx *cli.Context) error {
	text := c.Text
	if text == "" {
		date, err := resolveDate(ctx, c.Date)
		if err != nil {
			return err
		}
		entry, err := ctx.Service.Entry(date)
		if err != nil {
			return err
		}
		text = entry.WorkLog
	}

	enricher := ctx.AI(context.Background())
	if !enricher.Available() {
		ctx.Println("AI enrichment is not configured.")
		return nil
	}
	tags := enricher.SmartTags(context.Background(), text)
	if len(tags) == 0 {
		ctx.Println("No tags suggested.")
		return nil
	}
	ctx.Println(strings.Join(tags, " "))
	return nil
}
