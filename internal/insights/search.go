package insights

import (
	"strings"

	"github.com/julianstephens/ledger/internal/models"
)

// Field names where a search hit was found
const (
	SourceWork    = "work"
	SourceLearn   = "learn"
	SourceLeak    = "leak"
	SourceThought = "thought"
)

// Match is one entry that contains the query
type Match struct {
	Date    string   `json:"date"`
	Sources []string `json:"sources"`
	Snippet string   `json:"snippet"` // text of the first matching field
}

// Search returns the entries whose work, learning, leak or free-thought text
// contains query, ignoring case. A blank query matches nothing.
func Search(entries []models.Entry, query string) []Match {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var out []Match
	for _, e := range entries {
		fields := []struct {
			source string
			text   string
		}{
			{SourceWork, e.WorkLog},
			{SourceLearn, e.LearningLog},
			{SourceLeak, e.TimeLeakLog},
			{SourceThought, e.FreeThought},
		}

		var m Match
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f.text), q) {
				if len(m.Sources) == 0 {
					m.Snippet = f.text
				}
				m.Sources = append(m.Sources, f.source)
			}
		}
		if len(m.Sources) > 0 {
			m.Date = e.Date
			out = append(out, m)
		}
	}
	return out
}

// MatchingDates returns the dates of Search hits, for calendar highlighting.
func MatchingDates(entries []models.Entry, query string) []string {
	matches := Search(entries, query)
	dates := make([]string, 0, len(matches))
	for _, m := range matches {
		dates = append(dates, m.Date)
	}
	return dates
}
