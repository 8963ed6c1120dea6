package insights

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/julianstephens/ledger/internal/constants"
	"github.com/julianstephens/ledger/internal/models"
)

// SnippetKind separates short snippets from long ones
type SnippetKind string

const (
	Scroll SnippetKind = "scroll"
	Tome   SnippetKind = "tome"
)

// Snippet is one fenced code block harvested from an entry
type Snippet struct {
	ID       string      `json:"id"`
	Date     string      `json:"date"`
	Language string      `json:"language"`
	Code     string      `json:"code"`
	Lines    int         `json:"lines"`
	Kind     SnippetKind `json:"kind"`
}

// Harvest extracts the ``` fenced blocks from the work log, learning log and
// free thought of every entry, newest entries first.
//
// A block whose first line is short and has no spaces is taken to name its
// language; otherwise the language is txt.
func Harvest(entries []models.Entry) []Snippet {
	var out []Snippet

	for _, e := range entries {
		text := e.WorkLog + "\n" + e.LearningLog + "\n" + e.FreeThought
		parts := strings.Split(text, "```")

		// Odd parts sit between a pair of fences
		for i := 1; i < len(parts); i += 2 {
			raw := parts[i]
			if strings.TrimSpace(raw) == "" {
				continue
			}

			lines := strings.Split(raw, "\n")
			lang := constants.DefaultLanguage
			code := strings.TrimSpace(raw)

			first := strings.TrimSpace(lines[0])
			if n := utf8.RuneCountInString(first); n > 0 && n < constants.LanguageTagLimit && !strings.Contains(first, " ") {
				lang = first
				code = strings.TrimSpace(strings.Join(lines[1:], "\n"))
			}
			if code == "" {
				continue
			}

			lineCount := strings.Count(code, "\n") + 1
			kind := Scroll
			if lineCount > constants.TomeLineThreshold {
				kind = Tome
			}

			out = append(out, Snippet{
				ID:       fmt.Sprintf("%s-%d", e.Date, i),
				Date:     e.Date,
				Language: lang,
				Code:     code,
				Lines:    lineCount,
				Kind:     kind,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

// FilterSnippets keeps snippets whose code or language contains filter,
// ignoring case. An empty filter keeps everything.
func FilterSnippets(snippets []Snippet, filter string) []Snippet {
	q := strings.ToLower(filter)
	if q == "" {
		return snippets
	}
	var out []Snippet
	for _, s := range snippets {
		if strings.Contains(strings.ToLower(s.Code), q) || strings.Contains(strings.ToLower(s.Language), q) {
			out = append(out, s)
		}
	}
	return out
}

// School names the family a snippet language belongs to.
func School(lang string) string {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "js", "jsx", "ts", "tsx", "javascript", "typescript", "node":
		return "Lightning (JS)"
	case "py", "python", "django", "flask":
		return "Nature (Python)"
	case "sql", "plsql", "postgres", "mysql", "db":
		return "Water (SQL)"
	case "css", "html", "scss", "tailwind":
		return "Illusion (UI)"
	case "sh", "bash", "zsh", "terminal", "shell", "cmd":
		return "Dark Arts (Shell)"
	default:
		return "Arcane (Other)"
	}
}
