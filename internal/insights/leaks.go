package insights

import (
	"sort"
	"strings"

	"github.com/julianstephens/ledger/internal/models"
)

// LeakCount is how often a time-leak category was logged
type LeakCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// leakBuckets are checked in order; the first keyword contained in a line wins
var leakBuckets = []struct {
	keyword  string
	category string
}{
	{"Social", "Social Media"},
	{"Game", "Games"},
	{"Nap", "Napping"},
	{"Think", "Overthinking"},
	{"Switch", "Context Switch"},
	{"Procrast", "Procrastination"},
}

const miscLeak = "Misc"

var markdownStripper = strings.NewReplacer("*", "", "_", "", "#", "")

// CategorizeLeak maps one time-leak line to its category. Matching is
// case-sensitive, as the quick-insert buttons produce capitalised text.
func CategorizeLeak(line string) string {
	clean := strings.TrimSpace(markdownStripper.Replace(line))
	for _, b := range leakBuckets {
		if strings.Contains(clean, b.keyword) {
			return b.category
		}
	}
	return miscLeak
}

// TopLeaks counts the time-leak lines of entries in the same month as ref
// and returns the n most frequent categories.
func TopLeaks(entries []models.Entry, ref string, n int) []LeakCount {
	if len(ref) < 7 {
		return nil
	}
	month := ref[:7]

	counts := make(map[string]int)
	for _, e := range entries {
		if !strings.HasPrefix(e.Date, month) {
			continue
		}
		for _, line := range strings.Split(e.TimeLeakLog, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			counts[CategorizeLeak(line)]++
		}
	}

	out := make([]LeakCount, 0, len(counts))
	for cat, c := range counts {
		out = append(out, LeakCount{Category: cat, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})

	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
