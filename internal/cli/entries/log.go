package entries

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/julianstephens/ledger/internal/ai"
	"github.com/julianstephens/ledger/internal/cli"
	"github.com/julianstephens/ledger/internal/constants"
	"github.com/julianstephens/ledger/internal/errors"
	"github.com/julianstephens/ledger/internal/models"
	"github.com/julianstephens/ledger/internal/render"
	"github.com/julianstephens/ledger/internal/tui"
	"github.com/julianstephens/ledger/internal/validation"
)

// LogCmd creates or updates the entry for a day. Flags that are not given
// keep the stored value.
type LogCmd struct {
	Date    string  `help:"Entry date (YYYY-MM-DD). Defaults to today." short:"d"`
	Work    *string `help:"Work log: what you shipped." short:"w"`
	Learn   *string `help:"Learning log." short:"l"`
	Leak    *string `help:"Time leak log, one leak per line."`
	Thought *string `help:"Free thought."`
	Effort  *int    `help:"Effort rating from 1 to 5." short:"e"`
	Mood    *string `help:"Mood: neutral, flow, stuck or chill." short:"m"`
	Quest   *string `help:"Objective for the next day."`
	Suggest bool    `help:"Append AI-suggested hashtags to the work log."`
	Form    bool    `help:"Fill in the entry with an interactive form." short:"i"`
}

func (c *LogCmd) Run(ctx *cli.Context) error {
	date, err := resolveDate(ctx, c.Date)
	if err != nil {
		return err
	}

	draft, _, err := loadDraft(ctx, date)
	if err != nil {
		return err
	}
	if err := c.apply(&draft); err != nil {
		return err
	}

	if c.Form {
		// Refuse before anything is typed
		editable, err := ctx.Service.IsEditable(date)
		if err != nil {
			return err
		}
		if !editable {
			return fmt.Errorf("%w: %s", errors.ErrReadOnly, date)
		}
		if err := tui.RunEntryForm(&draft, ctx.Config.Limits); err != nil {
			return err
		}
	}

	if c.Suggest {
		tags := ctx.AI(context.Background()).SmartTags(context.Background(), draft.WorkLog)
		draft.WorkLog = ai.AppendTags(draft.WorkLog, tags)
		if len(tags) > 0 {
			ctx.Printf("Suggested tags: %s\n", strings.Join(tags, " "))
		}
	}

	saved, err := ctx.Service.Save(draft)
	if err != nil {
		ctx.Println("Entry not saved. Your draft:")
		ctx.Println()
		ctx.Printf("%s\n", render.EntryMarkdown(draft))
		return err
	}
	ctx.Printf("✓ Saved entry for %s (effort %d/%d)\n", saved.Date, saved.EffortRating, constants.EffortMax)
	return nil
}

func (c *LogCmd) apply(e *models.Entry) error {
	if c.Work != nil {
		e.WorkLog = *c.Work
	}
	if c.Learn != nil {
		e.LearningLog = *c.Learn
	}
	if c.Leak != nil {
		e.TimeLeakLog = *c.Leak
	}
	if c.Thought != nil {
		e.FreeThought = *c.Thought
	}
	if c.Effort != nil {
		e.EffortRating = *c.Effort
	}
	if c.Quest != nil {
		e.NextDayContext = *c.Quest
	}
	if c.Mood != nil {
		mood := constants.Mood(strings.ToLower(strings.TrimSpace(*c.Mood)))
		if mood != "" && !validation.ValidMood(mood) {
			verr := &errors.ValidationError{}
			verr.Add("mood", "must be one of neutral, flow, stuck, chill")
			return verr
		}
		e.Mood = mood
	}
	return nil
}

// resolveDate returns date, or today in the stored timezone when empty
func resolveDate(ctx *cli.Context, date string) (string, error) {
	if date != "" {
		return date, nil
	}
	return ctx.Service.Today()
}

// loadDraft returns the stored entry for date, or an empty draft
func loadDraft(ctx *cli.Context, date string) (models.Entry, bool, error) {
	entry, err := ctx.Service.Entry(date)
	if err == nil {
		return entry, true, nil
	}
	if stderrors.Is(err, errors.ErrNotFound) {
		return models.Entry{Date: date}, false, nil
	}
	return models.Entry{}, false, err
}

func describe(e models.Entry) string {
	first := strings.TrimSpace(strings.SplitN(e.WorkLog, "\n", 2)[0])
	if r := []rune(first); len(r) > 60 {
		first = string(r[:57]) + "..."
	}
	mood := string(e.Mood)
	if mood == "" {
		mood = "-"
	}
	return fmt.Sprintf("%s  %d/%d  %-7s  %s", e.Date, e.EffortRating, constants.EffortMax, mood, first)
}
