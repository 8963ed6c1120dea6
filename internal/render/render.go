// Package render turns entries into terminal text for the CLI and TUI.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/julianstephens/ledger/internal/constants"
	"github.com/julianstephens/ledger/internal/models"
)

const defaultWrap = 80

// Renderer formats entry markdown for a terminal theme
type Renderer struct {
	term *glamour.TermRenderer
}

// New creates a Renderer for theme ("light" or "dark") wrapping at width
// columns. A width <= 0 uses 80.
func New(theme string, width int) (*Renderer, error) {
	if width <= 0 {
		width = defaultWrap
	}
	style := constants.ThemeLight
	if theme == constants.ThemeDark {
		style = constants.ThemeDark
	}
	term, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
		glamour.WithEmoji(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return &Renderer{term: term}, nil
}

// Entry renders e as styled terminal text.
func (r *Renderer) Entry(e models.Entry) (string, error) {
	return r.Markdown(EntryMarkdown(e))
}

// Markdown renders arbitrary markdown.
func (r *Renderer) Markdown(md string) (string, error) {
	out, err := r.term.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}

// EntryMarkdown lays out an entry as a markdown document. Empty optional
// sections are left out.
func EntryMarkdown(e models.Entry) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", e.Date)
	fmt.Fprintf(&b, "**Effort** %s %d/%d", EffortBar(e.EffortRating), e.EffortRating, constants.EffortMax)
	if e.Mood != "" {
		fmt.Fprintf(&b, " · **Mood** %s", e.Mood)
	}
	b.WriteString("\n\n")

	section(&b, "Work", e.WorkLog)
	section(&b, "Learning", e.LearningLog)
	section(&b, "Time leaks", e.TimeLeakLog)
	section(&b, "Free thought", e.FreeThought)
	section(&b, "Tomorrow's quest", e.NextDayContext)

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func section(b *strings.Builder, title, body string) {
	body = strings.TrimSpace(body)
	if body == "" {
		return
	}
	fmt.Fprintf(b, "## %s\n\n%s\n\n", title, body)
}

// EffortBar draws a rating as filled and empty pips.
func EffortBar(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > constants.EffortMax {
		rating = constants.EffortMax
	}
	return strings.Repeat("●", rating) + strings.Repeat("○", constants.EffortMax-rating)
}

var sparkBlocks = []rune(" ▂▃▄▅▆▇█")

// Sparkline draws efforts (0-5) as a row of block characters. Days without an
// entry are blank.
func Sparkline(points []int) string {
	var b strings.Builder
	top := len(sparkBlocks) - 1
	for _, p := range points {
		if p < 0 {
			p = 0
		}
		if p > constants.EffortMax {
			p = constants.EffortMax
		}
		b.WriteRune(sparkBlocks[(p*top+constants.EffortMax-1)/constants.EffortMax])
	}
	return b.String()
}
