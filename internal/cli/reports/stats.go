package reports

import (
	"fmt"
	"strings"

	"github.com/julianstephens/ledger/internal/cli"
	"github.com/julianstephens/ledger/internal/constants"
	"github.com/julianstephens/ledger/internal/insights"
	"github.com/julianstephens/ledger/internal/render"
)

// StatsCmd prints streaks, completion and the sidebar summary
type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	stats, err := ctx.Service.Stats()
	if err != nil {
		return err
	}
	entries, err := ctx.Service.Entries()
	if err != nil {
		return err
	}
	today, err := ctx.Service.Today()
	if err != nil {
		return err
	}

	ctx.Printf("Current streak:  %d day(s)\n", stats.CurrentStreak)
	ctx.Printf("Longest streak:  %d day(s)\n", stats.LongestStreak)
	ctx.Printf("Total entries:   %d\n", stats.TotalEntries)
	ctx.Printf("Completion rate: %d%%\n", stats.CompletionRate)

	points := insights.Sparkline(entries, today, constants.SparklineDays)
	ctx.Printf("Last %d days:     [%s]\n", constants.SparklineDays, render.Sparkline(points))

	if y, ok := insights.Yesterday(entries, today); ok && strings.TrimSpace(y.NextDayContext) != "" {
		ctx.Printf("\nToday's quest (from %s): %s\n", y.Date, y.NextDayContext)
	}

	leaks := insights.TopLeaks(entries, today, constants.TopLeakCount)
	if len(leaks) > 0 {
		ctx.Println("\nTop time leaks this month:")
		for _, l := range leaks {
			ctx.Printf("  %-16s %d\n", l.Category, l.Count)
		}
	}
	return nil
}

// SkillsCmd prints hashtag XP and levels
type SkillsCmd struct {
	Limit int  `help:"Number of skills to show." default:"6"`
	All   bool `help:"Show every skill."`
}

func (c *SkillsCmd) Run(ctx *cli.Context) error {
	entries, err := ctx.Service.Entries()
	if err != nil {
		return err
	}
	now, err := ctx.Service.Now()
	if err != nil {
		return err
	}

	limit := c.Limit
	if c.All {
		limit = 0
	}
	skills := insights.Skills(entries, now, limit)
	if len(skills) == 0 {
		ctx.Println("No skills yet. Tag your work log with #hashtags to earn XP.")
		return nil
	}
	for _, s := range skills {
		ctx.Printf("%-18s Lv %-3d %5d XP  %s  %s\n", s.Name, s.Level, s.XP, progressBar(s.Progress), statusLabel(s))
	}
	return nil
}

func progressBar(progress int) string {
	filled := progress / 10
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", 10-filled) + "]"
}

func statusLabel(s insights.Skill) string {
	switch s.Status {
	case insights.SkillDecaying:
		return fmt.Sprintf("decaying (%dd idle)", s.DaysSince)
	case insights.SkillMaster:
		return "master"
	default:
		return "active"
	}
}

// BadgesCmd prints unlocked achievements
type BadgesCmd struct{}

func (c *BadgesCmd) Run(ctx *cli.Context) error {
	entries, err := ctx.Service.Entries()
	if err != nil {
		return err
	}
	now, err := ctx.Service.Now()
	if err != nil {
		return err
	}

	badges := insights.Badges(entries, insights.Skills(entries, now, constants.DefaultSkillLimit))
	if len(badges) == 0 {
		ctx.Println("No badges unlocked yet.")
		return nil
	}
	for _, b := range badges {
		ctx.Printf("%s  %-15s %s\n", b.Icon, b.Name, b.Description)
	}
	return nil
}

// LeaksCmd prints the most frequent time leaks of a month
type LeaksCmd struct {
	Month string `help:"Month to summarise (YYYY-MM). Defaults to the current month."`
	Top   int    `help:"Number of categories to show." default:"3"`
}

func (c *LeaksCmd) Run(ctx *cli.Context) error {
	entries, err := ctx.Service.Entries()
	if err != nil {
		return err
	}
	ref := c.Month + "-01"
	if c.Month == "" {
		if ref, err = ctx.Service.Today(); err != nil {
			return err
		}
	}

	leaks := insights.TopLeaks(entries, ref, c.Top)
	if len(leaks) == 0 {
		ctx.Printf("No time leaks logged in %s.\n", ref[:7])
		return nil
	}
	for _, l := range leaks {
		ctx.Printf("%-16s %d\n", l.Category, l.Count)
	}
	return nil
}
