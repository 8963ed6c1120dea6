package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/ledger/internal/constants"
	"github.com/julianstephens/ledger/internal/insights"
	"github.com/julianstephens/ledger/internal/models"
)

// heat colours by effort level, index 0 is a day without an entry
var heat = []lipgloss.Color{"237", "22", "28", "34", "40", "46"}

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	weekdayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(5).
			Align(lipgloss.Center)

	cellStyle = lipgloss.NewStyle().
			Width(5).
			Align(lipgloss.Center)

	legendStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)
)

type Model struct {
	weeks    [][]*insights.CalendarDay
	year     int
	month    time.Month
	selected string
}

func New() Model {
	return Model{}
}

// SetMonth lays out the month containing selected
func (m *Model) SetMonth(entries []models.Entry, selected, today string, highlight []string) {
	t, err := time.Parse(constants.DateFormat, selected)
	if err != nil {
		return
	}
	m.year, m.month = t.Year(), t.Month()
	m.selected = selected
	m.weeks = insights.Month(entries, m.year, m.month, today, highlight)
}

// Weeks returns the laid-out grid
func (m Model) Weeks() [][]*insights.CalendarDay {
	return m.weeks
}

func (m Model) View() string {
	if m.weeks == nil {
		return "No month loaded."
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s %d", m.month, m.year)))
	b.WriteString("\n\n")

	days := make([]string, 0, 7)
	for _, d := range []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"} {
		days = append(days, weekdayStyle.Render(d))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, days...))
	b.WriteString("\n")

	for _, week := range m.weeks {
		cells := make([]string, 0, 7)
		for _, day := range week {
			cells = append(cells, m.renderCell(day))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(legendStyle.Render("less "))
	for _, c := range heat {
		b.WriteString(lipgloss.NewStyle().Background(c).Render("  "))
	}
	b.WriteString(legendStyle.Render(" more   * search hit   [ ] selected"))
	return b.String()
}

func (m Model) renderCell(day *insights.CalendarDay) string {
	if day == nil {
		return cellStyle.Render("")
	}

	label := fmt.Sprintf("%2d", day.Day)
	if day.Matched {
		label += "*"
	}
	if day.Date == m.selected {
		label = "[" + label + "]"
	}

	style := cellStyle
	switch {
	case day.Future:
		style = style.Foreground(lipgloss.Color("238"))
	case day.Level > 0:
		level := day.Level
		if level >= len(heat) {
			level = len(heat) - 1
		}
		style = style.Background(heat[level]).Foreground(lipgloss.Color("232"))
	default:
		style = style.Foreground(lipgloss.Color("245"))
	}
	if day.Today {
		style = style.Bold(true).Underline(true)
	}
	return style.Render(label)
}
