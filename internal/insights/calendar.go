package insights

import (
	"time"

	"github.com/julianstephens/ledger/internal/constants"
	"github.com/julianstephens/ledger/internal/models"
	"github.com/julianstephens/ledger/internal/utils"
)

// CalendarDay is one cell of a month heat map
type CalendarDay struct {
	Date    string `json:"date"`
	Day     int    `json:"day"`
	Level   int    `json:"level"` // effort 1-5, 0 without an entry
	Today   bool   `json:"today"`
	Future  bool   `json:"future"`
	Matched bool   `json:"matched,omitempty"`
}

// Month lays out year/month as weeks starting on Sunday. Leading and
// trailing cells outside the month are nil. highlight marks search hits.
func Month(entries []models.Entry, year int, month time.Month, today string, highlight []string) [][]*CalendarDay {
	byDate := index(entries)
	hits := make(map[string]bool, len(highlight))
	for _, d := range highlight {
		hits[d] = true
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	var weeks [][]*CalendarDay
	week := make([]*CalendarDay, 7)
	col := int(first.Weekday())

	for d := 1; d <= daysInMonth; d++ {
		date := time.Date(year, month, d, 0, 0, 0, 0, time.UTC).Format(constants.DateFormat)
		week[col] = &CalendarDay{
			Date:    date,
			Day:     d,
			Level:   byDate[date].EffortRating,
			Today:   date == today,
			Future:  date > today,
			Matched: hits[date],
		}
		col++
		if col == 7 {
			weeks = append(weeks, week)
			week = make([]*CalendarDay, 7)
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, week)
	}
	return weeks
}

// ActivityDay is one column of the rolling activity strip
type ActivityDay struct {
	Date string `json:"date"`
	XP   int    `json:"xp"` // effort * 20, capped at 100
}

// Activity returns the days ending on ref, oldest first, scored by effort.
func Activity(entries []models.Entry, ref string, days int) []ActivityDay {
	byDate := index(entries)
	out := make([]ActivityDay, 0, days)
	for i := days - 1; i >= 0; i-- {
		d, err := utils.AddDays(ref, -i)
		if err != nil {
			return nil
		}
		xp := byDate[d].EffortRating * 20
		if xp > 100 {
			xp = 100
		}
		out = append(out, ActivityDay{Date: d, XP: xp})
	}
	return out
}
