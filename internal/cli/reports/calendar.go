package reports

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/ledger/internal/cli"
	"github.com/julianstephens/ledger/internal/insights"
)

// CalendarCmd prints a month heat map
type CalendarCmd struct {
	Month  string `help:"Month to show (YYYY-MM). Defaults to the current month."`
	Search string `help:"Mark days whose entry contains this text."`
}

// heat maps an effort level to a cell marker
var heat = []string{" . ", " 1 ", " 2 ", " 3 ", " 4 ", " 5 "}

func (c *CalendarCmd) Run(ctx *cli.Context) error {
	today, err := ctx.Service.Today()
	if err != nil {
		return err
	}
	month := c.Month
	if month == "" {
		month = today[:7]
	}
	first, err := time.Parse("2006-01", month)
	if err != nil {
		return fmt.Errorf("invalid month %q, expected YYYY-MM", month)
	}

	entries, err := ctx.Service.Entries()
	if err != nil {
		return err
	}
	var hits []string
	if c.Search != "" {
		hits = insights.MatchingDates(entries, c.Search)
	}

	weeks := insights.Month(entries, first.Year(), first.Month(), today, hits)
	ctx.Printf("%s\n", first.Format("January 2006"))
	ctx.Println(" Su  Mo  Tu  We  Th  Fr  Sa")
	for _, week := range weeks {
		var b strings.Builder
		for _, d := range week {
			b.WriteString(cell(d))
			b.WriteString(" ")
		}
		ctx.Println(strings.TrimRight(b.String(), " "))
	}
	return nil
}

func cell(d *insights.CalendarDay) string {
	switch {
	case d == nil:
		return "   "
	case d.Future:
		return fmt.Sprintf("%3d", d.Day)
	}
	mark := heat[d.Level]
	if d.Matched {
		mark = "[" + strings.TrimSpace(mark) + "]"
	} else if d.Today {
		mark = "<" + strings.TrimSpace(mark) + ">"
	}
	return mark
}
