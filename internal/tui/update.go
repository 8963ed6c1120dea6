package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/ledger/internal/ai"
	"github.com/julianstephens/ledger/internal/constants"
	"github.com/julianstephens/ledger/internal/errors"
	"github.com/julianstephens/ledger/internal/insights"
	"github.com/julianstephens/ledger/internal/ledger"
)

// tagsMsg carries suggested hashtags for the work log of date
type tagsMsg struct {
	date string
	tags []string
}

// questMsg carries a generated next-day objective for date
type questMsg struct {
	date  string
	quest string
	err   error
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		if m.form != nil {
			m.form = m.form.WithWidth(m.viewport.Width)
		}
		return m, nil
	case tagsMsg:
		m.applyTags(msg)
		return m, nil
	case questMsg:
		m.applyQuest(msg)
		return m, nil
	}

	switch m.state {
	case StateEditing:
		return m.updateEditing(msg)
	case StateSearch:
		return m.updateSearch(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Tab):
		m.state = (m.state + 1) % SessionState(len(tabTitles))
		m.viewport.GotoTop()
		m.refresh()
	case key.Matches(msg, m.keys.ShiftTab):
		m.state = (m.state - 1 + SessionState(len(tabTitles))) % SessionState(len(tabTitles))
		m.viewport.GotoTop()
		m.refresh()
	case key.Matches(msg, m.keys.PrevDay):
		m.moveDays(-1)
	case key.Matches(msg, m.keys.NextDay):
		m.moveDays(1)
	case m.state == StateCalendar && key.Matches(msg, m.keys.Up):
		m.moveDays(-7)
	case m.state == StateCalendar && key.Matches(msg, m.keys.Down):
		m.moveDays(7)
	case key.Matches(msg, m.keys.PrevMonth):
		m.moveMonths(-1)
	case key.Matches(msg, m.keys.NextMonth):
		m.moveMonths(1)
	case key.Matches(msg, m.keys.Today):
		m.selectDate(m.today)
	case key.Matches(msg, m.keys.Edit):
		return m, m.startEditing()
	case key.Matches(msg, m.keys.Quest):
		return m, m.requestQuest()
	case key.Matches(msg, m.keys.Tags):
		return m, m.requestTags()
	case key.Matches(msg, m.keys.Search):
		m.previousState = m.state
		m.state = StateSearch
		m.search.SetValue(m.query)
		return m, tea.Batch(m.search.Focus(), textinput.Blink)
	case key.Matches(msg, m.keys.Clear):
		if m.query != "" {
			m.applySearch("")
		}
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) startEditing() tea.Cmd {
	if !ledger.IsEditable(m.selected, m.today) {
		m.status = fmt.Sprintf("%s is read-only", m.selected)
		return nil
	}

	entry, _ := m.entryFor(m.selected)
	entry.Date = m.selected
	m.editing = entry
	m.entryForm = NewEntryFormModel(entry)
	m.form = NewEntryForm(m.entryForm, m.svc.Validator().Limits()).WithWidth(m.viewport.Width)
	m.formError = ""
	m.previousState = m.state
	m.state = StateEditing
	return m.form.Init()
}

func (m Model) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.formError = ""
		m.state = m.previousState
		m.status = "Edit cancelled"
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		draft := m.editing
		m.entryForm.Apply(&draft)
		saved, err := m.svc.Save(draft)
		if err != nil {
			// Stay in the form so nothing typed is lost
			m.formError = errors.Format(err)
			m.form.State = huh.StateNormal
			return m, cmd
		}
		m.formError = ""
		m.state = m.previousState
		m.status = fmt.Sprintf("✓ Saved %s", saved.Date)
		if err := m.reload(); err != nil {
			m.status = errors.Format(err)
		}
	case huh.StateAborted:
		m.formError = ""
		m.state = m.previousState
		m.status = "Edit cancelled"
	}
	return m, cmd
}

func (m Model) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			m.search.Blur()
			m.state = m.previousState
			m.applySearch(m.search.Value())
			return m, nil
		case tea.KeyEsc:
			m.search.Blur()
			m.state = m.previousState
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m *Model) applySearch(query string) {
	m.query = strings.TrimSpace(query)
	if m.query == "" {
		m.highlight = nil
		m.status = "Search cleared"
	} else {
		m.highlight = insights.MatchingDates(m.entries, m.query)
		m.status = fmt.Sprintf("%d day(s) match %q", len(m.highlight), m.query)
	}
	m.refresh()
}

// enrichable returns the selected entry when enrichment may change it
func (m *Model) enrichable() (string, bool) {
	if m.pending {
		m.status = "Waiting for the previous suggestion..."
		return "", false
	}
	if !m.enricher.Available() {
		m.status = "AI enrichment is off. Enable it with `ledger settings --ai-enabled` and set an API key."
		return "", false
	}
	if !ledger.IsEditable(m.selected, m.today) {
		m.status = fmt.Sprintf("%s is read-only", m.selected)
		return "", false
	}
	entry, ok := m.entryFor(m.selected)
	if !ok {
		m.status = "Write the entry first"
		return "", false
	}
	if len([]rune(strings.TrimSpace(entry.WorkLog))) < constants.AIMinTextLen {
		m.status = "The work log is too short for a suggestion"
		return "", false
	}
	return entry.Date, true
}

func (m *Model) requestQuest() tea.Cmd {
	date, ok := m.enrichable()
	if !ok {
		return nil
	}
	entry, _ := m.entryFor(date)
	m.pending = true
	m.status = "Asking for tomorrow's quest..."

	enricher := m.enricher
	return func() tea.Msg {
		quest, err := enricher.Quest(context.Background(), entry.WorkLog, entry.Mood)
		return questMsg{date: date, quest: quest, err: err}
	}
}

func (m *Model) requestTags() tea.Cmd {
	date, ok := m.enrichable()
	if !ok {
		return nil
	}
	entry, _ := m.entryFor(date)
	m.pending = true
	m.status = "Suggesting tags..."

	enricher := m.enricher
	return func() tea.Msg {
		return tagsMsg{date: date, tags: enricher.SmartTags(context.Background(), entry.WorkLog)}
	}
}

func (m *Model) applyQuest(msg questMsg) {
	m.pending = false
	if msg.err != nil {
		m.status = errors.Format(msg.err)
		return
	}
	if _, err := m.svc.SetQuest(msg.date, msg.quest); err != nil {
		m.status = errors.Format(err)
		return
	}
	m.status = "Quest set: " + msg.quest
	if err := m.reload(); err != nil {
		m.status = errors.Format(err)
	}
}

func (m *Model) applyTags(msg tagsMsg) {
	m.pending = false
	if len(msg.tags) == 0 {
		m.status = "No tags suggested"
		return
	}
	entry, err := m.svc.Entry(msg.date)
	if err != nil {
		m.status = errors.Format(err)
		return
	}
	updated := ai.AppendTags(entry.WorkLog, msg.tags)
	if updated == entry.WorkLog {
		m.status = "Suggested tags are already present"
		return
	}
	entry.WorkLog = updated
	if _, err := m.svc.Save(entry); err != nil {
		m.status = errors.Format(err)
		return
	}
	m.status = "Tagged: " + strings.Join(msg.tags, " ")
	if err := m.reload(); err != nil {
		m.status = errors.Format(err)
	}
}
