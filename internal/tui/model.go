// Package tui is the interactive ledger: a journal for the selected day, a
// month heat map, the skills sidebar and the code grimoire.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/ledger/internal/ai"
	"github.com/julianstephens/ledger/internal/constants"
	"github.com/julianstephens/ledger/internal/insights"
	"github.com/julianstephens/ledger/internal/ledger"
	"github.com/julianstephens/ledger/internal/logger"
	"github.com/julianstephens/ledger/internal/models"
	"github.com/julianstephens/ledger/internal/render"
	"github.com/julianstephens/ledger/internal/tui/components/calendar"
)

type SessionState int

const (
	StateJournal SessionState = iota
	StateCalendar
	StateSkills
	StateGrimoire
	StateEditing
	StateSearch
)

// tabTitles are the SessionStates reachable with tab, in order
var tabTitles = []string{"Journal", "Calendar", "Skills", "Grimoire"}

// chrome is the number of rows taken by tabs, stats, status and help
const chrome = 7

type Model struct {
	svc      *ledger.Service
	enricher ai.Enricher
	theme    string
	renderer *render.Renderer

	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	viewport      viewport.Model
	calendar      calendar.Model
	search        textinput.Model

	form      *huh.Form
	entryForm *EntryFormModel
	editing   models.Entry
	formError string

	entries   []models.Entry
	stats     models.Stats
	today     string
	selected  string
	query     string
	highlight []string

	status   string
	pending  bool // enrichment request in flight
	quitting bool
	width    int
	height   int
}

// NewModel loads the ledger and selects today
func NewModel(svc *ledger.Service, enricher ai.Enricher, theme string) (Model, error) {
	if enricher == nil {
		enricher = ai.Noop{}
	}
	today, err := svc.Today()
	if err != nil {
		return Model{}, err
	}

	renderer, err := render.New(theme, 0)
	if err != nil {
		return Model{}, err
	}

	ti := textinput.New()
	ti.Placeholder = "search work, learning, leaks and thoughts"
	ti.CharLimit = 80
	ti.Prompt = "/ "

	m := Model{
		svc:      svc,
		enricher: enricher,
		theme:    theme,
		renderer: renderer,
		state:    StateJournal,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		viewport: viewport.New(80, 20),
		calendar: calendar.New(),
		search:   ti,
		today:    today,
		selected: today,
	}
	if err := m.reload(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return nil
}

// reload reads entries and stats back from the service
func (m *Model) reload() error {
	entries, err := m.svc.Entries()
	if err != nil {
		return err
	}
	stats, err := m.svc.Stats()
	if err != nil {
		return err
	}
	today, err := m.svc.Today()
	if err != nil {
		return err
	}

	m.entries = entries
	m.stats = stats
	m.today = today
	if m.query != "" {
		m.highlight = insights.MatchingDates(entries, m.query)
	}
	m.refresh()
	return nil
}

// refresh rebuilds the views derived from the selection
func (m *Model) refresh() {
	m.calendar.SetMonth(m.entries, m.selected, m.today, m.highlight)
	m.viewport.SetContent(m.content(m.tab()))
}

// tab is the tab shown behind the editing and search overlays
func (m Model) tab() SessionState {
	if m.state == StateEditing || m.state == StateSearch {
		return m.previousState
	}
	return m.state
}

func (m Model) entryFor(date string) (models.Entry, bool) {
	for _, e := range m.entries {
		if e.Date == date {
			return e, true
		}
	}
	return models.Entry{}, false
}

func (m *Model) selectDate(date string) {
	if date > m.today {
		date = m.today
	}
	if date == m.selected {
		return
	}
	m.selected = date
	m.viewport.GotoTop()
	m.refresh()
}

func (m *Model) moveDays(n int) {
	t, err := time.Parse(constants.DateFormat, m.selected)
	if err != nil {
		return
	}
	m.selectDate(t.AddDate(0, 0, n).Format(constants.DateFormat))
}

// moveMonths jumps to the first day of a neighbouring month
func (m *Model) moveMonths(n int) {
	t, err := time.Parse(constants.DateFormat, m.selected)
	if err != nil {
		return
	}
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	m.selectDate(first.Format(constants.DateFormat))
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	m.viewport.Width = width - 4
	m.viewport.Height = max(height-chrome, 3)

	renderer, err := render.New(m.theme, width-6)
	if err != nil {
		logger.Warn("Failed to rebuild renderer", "error", err)
	} else {
		m.renderer = renderer
	}
	m.refresh()
}

// Selected returns the selected date
func (m Model) Selected() string { return m.selected }

// State returns the active view
func (m Model) State() SessionState { return m.state }

// Status returns the last status line
func (m Model) Status() string { return m.status }

// Highlight returns the dates matching the active search
func (m Model) Highlight() []string { return m.highlight }
