package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/ledger/internal/constants"
	"github.com/julianstephens/ledger/internal/insights"
	"github.com/julianstephens/ledger/internal/ledger"
	"github.com/julianstephens/ledger/internal/render"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateEditing:
		content = m.viewEditing()
	case StateSearch:
		content = lipgloss.JoinVertical(lipgloss.Left, m.viewTab(m.previousState), m.search.View())
	default:
		content = m.viewTab(m.state)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		m.viewStats(),
		content,
		m.viewStatus(),
		m.help.View(m.keys),
	)
}

func (m Model) viewTab(state SessionState) string {
	if state == StateCalendar {
		return docStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top,
			m.calendar.View(),
			"    ",
			m.daySummary(),
		))
	}
	return docStyle.Render(m.viewport.View())
}

func (m Model) viewTabs() string {
	active := m.tab()
	var tabs []string
	for i, title := range tabTitles {
		if active == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStats() string {
	return statsStyle.Render(fmt.Sprintf("🔥 %d day streak · best %d · %d entries · %d%% completion",
		m.stats.CurrentStreak, m.stats.LongestStreak, m.stats.TotalEntries, m.stats.CompletionRate))
}

func (m Model) viewStatus() string {
	if m.formError != "" {
		return dangerStyle.Render(m.formError)
	}
	return statusStyle.Render(m.status)
}

func (m Model) viewEditing() string {
	header := titleStyle.Render("Editing " + m.editing.Date)
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, "", m.form.View()))
}

// content renders the scrollable body of a tab
func (m Model) content(state SessionState) string {
	switch state {
	case StateSkills:
		return m.skillsContent()
	case StateGrimoire:
		return m.grimoireContent()
	default:
		return m.journalContent()
	}
}

func (m Model) dateLabel(date string) string {
	switch {
	case date == m.today:
		return date + " (today)"
	case ledger.IsEditable(date, m.today):
		return date + " (yesterday)"
	default:
		return date + " (read-only)"
	}
}

func (m Model) journalContent() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.dateLabel(m.selected)))
	b.WriteString("\n\n")

	if y, ok := insights.Yesterday(m.entries, m.selected); ok && strings.TrimSpace(y.NextDayContext) != "" {
		b.WriteString(questStyle.Render("Quest from " + y.Date + ": " + y.NextDayContext))
		b.WriteString("\n")
	}

	entry, ok := m.entryFor(m.selected)
	if !ok {
		if ledger.IsEditable(m.selected, m.today) {
			b.WriteString(mutedStyle.Render("No entry yet. Press e to log the day."))
		} else {
			b.WriteString(mutedStyle.Render("No entry for this day."))
		}
		return b.String()
	}

	out, err := m.renderer.Entry(entry)
	if err != nil {
		out = render.EntryMarkdown(entry)
	}
	b.WriteString(out)
	return b.String()
}

func (m Model) daySummary() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.dateLabel(m.selected)))
	b.WriteString("\n\n")

	entry, ok := m.entryFor(m.selected)
	if !ok {
		b.WriteString(mutedStyle.Render("No entry."))
	} else {
		fmt.Fprintf(&b, "Effort %s %d/%d\n", render.EffortBar(entry.EffortRating), entry.EffortRating, constants.EffortMax)
		if entry.Mood != "" {
			fmt.Fprintf(&b, "Mood   %s\n", entry.Mood)
		}
		b.WriteString("\n")
		b.WriteString(firstLine(entry.WorkLog, 40))
		if q := strings.TrimSpace(entry.NextDayContext); q != "" {
			b.WriteString("\n\n")
			b.WriteString(mutedStyle.Render("Next: " + firstLine(q, 34)))
		}
	}

	if m.query != "" {
		fmt.Fprintf(&b, "\n\n%s", mutedStyle.Render(fmt.Sprintf("%d day(s) match %q", len(m.highlight), m.query)))
	}
	return b.String()
}

func (m Model) skillsContent() string {
	var b strings.Builder

	points := insights.Sparkline(m.entries, m.today, constants.SparklineDays)
	b.WriteString(titleStyle.Render("Effort, last 7 days"))
	fmt.Fprintf(&b, "  %s\n\n", render.Sparkline(points))

	now, err := m.svc.Now()
	if err != nil {
		now = time.Now()
	}
	skills := insights.Skills(m.entries, now, constants.DefaultSkillLimit)

	b.WriteString(titleStyle.Render("Skills"))
	b.WriteString("\n")
	if len(skills) == 0 {
		b.WriteString(mutedStyle.Render("Tag your work log with #hashtags to earn XP."))
		b.WriteString("\n")
	}
	for _, s := range skills {
		fmt.Fprintf(&b, "%-16s Lv %-3d %s %4d XP  %s\n", s.Name, s.Level, progress(s.Progress), s.XP, skillState(s))
	}

	badges := insights.Badges(m.entries, skills)
	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Badges"))
	b.WriteString("\n")
	if len(badges) == 0 {
		b.WriteString(mutedStyle.Render("None unlocked yet."))
		b.WriteString("\n")
	}
	for _, badge := range badges {
		fmt.Fprintf(&b, "%s %s  %s\n", badge.Icon, badge.Name, mutedStyle.Render(badge.Description))
	}

	leaks := insights.TopLeaks(m.entries, m.selected, constants.TopLeakCount)
	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Top time leaks in " + m.selected[:7]))
	b.WriteString("\n")
	if len(leaks) == 0 {
		b.WriteString(mutedStyle.Render("No leaks logged."))
		b.WriteString("\n")
	}
	for _, l := range leaks {
		fmt.Fprintf(&b, "%-16s %d\n", l.Category, l.Count)
	}
	return b.String()
}

func (m Model) grimoireContent() string {
	snippets := insights.FilterSnippets(insights.Harvest(m.entries), m.query)
	if len(snippets) == 0 {
		if m.query != "" {
			return mutedStyle.Render(fmt.Sprintf("No snippets match %q.", m.query))
		}
		return mutedStyle.Render("No code yet. Fence snippets with ``` in your logs to collect them here.")
	}

	blocks := make([]string, 0, len(snippets))
	for _, s := range snippets {
		header := fmt.Sprintf("%s · %s · %s · %d line(s)", s.Date, s.Language, s.Kind, s.Lines)
		blocks = append(blocks, snippetStyle.Render(titleStyle.Render(header)+"\n"+snippetPreview(s)))
	}
	return strings.Join(blocks, "\n")
}

// snippetPreview shows scrolls in full and the head of tomes
func snippetPreview(s insights.Snippet) string {
	if s.Kind != insights.Tome {
		return s.Code
	}
	lines := strings.Split(s.Code, "\n")
	return strings.Join(lines[:constants.TomeLineThreshold], "\n") +
		"\n" + mutedStyle.Render(fmt.Sprintf("... %d more line(s)", len(lines)-constants.TomeLineThreshold))
}

func progress(p int) string {
	filled := p / 10
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}

func skillState(s insights.Skill) string {
	switch s.Status {
	case insights.SkillDecaying:
		return dangerStyle.Render(fmt.Sprintf("decaying, %dd idle", s.DaysSince))
	case insights.SkillMaster:
		return statsStyle.Render("master")
	default:
		return mutedStyle.Render("active")
	}
}

func firstLine(text string, limit int) string {
	line := strings.TrimSpace(strings.SplitN(strings.TrimSpace(text), "\n", 2)[0])
	if r := []rune(line); len(r) > limit {
		return string(r[:limit-3]) + "..."
	}
	return line
}

