package ledger

import (
	"math"
	"sort"
	"time"

	"github.com/julianstephens/ledger/internal/constants"
	"github.com/julianstephens/ledger/internal/models"
	"github.com/julianstephens/ledger/internal/utils"
)

// CalculateStats derives streak and completion metrics from the set of
// entry dates. now fixes both "today" (in now's location) and the
// completion-rate denominator.
//
// The current streak tolerates a missing entry for today: if today has no
// entry the walk starts at yesterday. A missing yesterday is not tolerated.
func CalculateStats(dates []string, now time.Time) models.Stats {
	sorted := normalizeDates(dates)
	if len(sorted) == 0 {
		return models.Stats{}
	}

	present := make(map[string]struct{}, len(sorted))
	for _, d := range sorted {
		present[d] = struct{}{}
	}

	return models.Stats{
		CurrentStreak:  currentStreak(present, now),
		LongestStreak:  longestStreak(sorted),
		TotalEntries:   len(sorted),
		CompletionRate: completionRate(sorted[0], len(sorted), now),
	}
}

// normalizeDates returns the distinct valid dates in ascending order
func normalizeDates(dates []string) []string {
	seen := make(map[string]struct{}, len(dates))
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		if _, ok := seen[d]; ok {
			continue
		}
		if !utils.ValidateDateFormat(d) {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	// ISO dates sort lexically in calendar order
	sort.Strings(out)
	return out
}

func currentStreak(present map[string]struct{}, now time.Time) int {
	check := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if _, ok := present[check.Format(constants.DateFormat)]; !ok {
		check = check.AddDate(0, 0, -1)
	}

	streak := 0
	for {
		if _, ok := present[check.Format(constants.DateFormat)]; !ok {
			return streak
		}
		streak++
		check = check.AddDate(0, 0, -1)
	}
}

func longestStreak(sorted []string) int {
	longest, run := 1, 1
	for i := 1; i < len(sorted); i++ {
		gap, err := utils.DaysBetween(sorted[i-1], sorted[i])
		if err == nil && gap == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

func completionRate(first string, total int, now time.Time) int {
	elapsed, err := utils.ElapsedDays(first, now)
	if err != nil {
		return 0
	}
	days := int(math.Ceil(elapsed))
	if days < 1 {
		days = 1
	}
	return int(math.Round(float64(total) / float64(days) * 100))
}
