package entries

import (
	"github.com/julianstephens/ledger/internal/cli"
	"github.com/julianstephens/ledger/internal/render"
)

// ShowCmd prints one day's entry
type ShowCmd struct {
	Date string `arg:"" optional:"" help:"Entry date (YYYY-MM-DD). Defaults to today."`
	Raw  bool   `help:"Print markdown without terminal styling."`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	date, err := resolveDate(ctx, c.Date)
	if err != nil {
		return err
	}
	entry, err := ctx.Service.Entry(date)
	if err != nil {
		return err
	}

	md := render.EntryMarkdown(entry)
	if !c.Raw {
		r, err := ctx.Renderer()
		if err != nil {
			return err
		}
		if md, err = r.Markdown(md); err != nil {
			return err
		}
	}
	ctx.Printf("%s", md)

	editable, err := ctx.Service.IsEditable(date)
	if err == nil && !editable {
		ctx.Println("(read-only)")
	}
	return nil
}
