package entries

import (
	"context"
	"strings"

	"github.com/julianstephens/ledger/internal/cli"
)

// QuestCmd sets tomorrow's objective on a day's entry
type QuestCmd struct {
	Text     string `arg:"" optional:"" help:"The objective. Omit with --generate to ask the AI."`
	Date     string `help:"Entry date (YYYY-MM-DD). Defaults to today." short:"d"`
	Generate bool   `help:"Generate the objective from the day's work log and mood." short:"g"`
}

func (c *QuestCmd) Run(ctx *cli.Context) error {
	date, err := resolveDate(ctx, c.Date)
	if err != nil {
		return err
	}

	quest := strings.TrimSpace(c.Text)
	if c.Generate && quest == "" {
		entry, err := ctx.Service.Entry(date)
		if err != nil {
			return err
		}
		quest, err = ctx.AI(context.Background()).Quest(context.Background(), entry.WorkLog, entry.Mood)
		if err != nil {
			return err
		}
		ctx.Printf("Generated quest: %s\n", quest)
	}

	if _, err := ctx.Service.SetQuest(date, quest); err != nil {
		return err
	}
	ctx.Printf("✓ Quest saved for %s\n", date)
	return nil
}
