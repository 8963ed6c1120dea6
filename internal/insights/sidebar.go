package insights

import (
	"github.com/julianstephens/ledger/internal/models"
	"github.com/julianstephens/ledger/internal/utils"
)

func index(entries []models.Entry) map[string]models.Entry {
	m := make(map[string]models.Entry, len(entries))
	for _, e := range entries {
		m[e.Date] = e
	}
	return m
}

// Sparkline returns the effort of each of the days ending on ref, oldest
// first, with 0 for days without an entry.
func Sparkline(entries []models.Entry, ref string, days int) []int {
	byDate := index(entries)
	points := make([]int, 0, days)
	for i := days - 1; i >= 0; i-- {
		d, err := utils.AddDays(ref, -i)
		if err != nil {
			return nil
		}
		points = append(points, byDate[d].EffortRating)
	}
	return points
}

// Yesterday returns the entry for the day before ref, which carries the
// quest set during that day's shutdown.
func Yesterday(entries []models.Entry, ref string) (models.Entry, bool) {
	d, err := utils.AddDays(ref, -1)
	if err != nil {
		return models.Entry{}, false
	}
	e, ok := index(entries)[d]
	return e, ok
}
