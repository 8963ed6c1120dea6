package ledger

import (
	"math/rand"
	"testing"
	"time"

	"github.com/julianstephens/ledger/internal/constants"
	"github.com/julianstephens/ledger/internal/models"
)

func day(base time.Time, offset int) string {
	return base.AddDate(0, 0, offset).Format(constants.DateFormat)
}

func TestCalculateStats(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		dates []string
		now   time.Time
		want  models.Stats
	}{
		{
			name: "no entries",
			now:  now,
			want: models.Stats{},
		},
		{
			name:  "three consecutive days ending today",
			dates: []string{day(now, -2), day(now, -1), day(now, 0)},
			now:   now,
			want:  models.Stats{CurrentStreak: 3, LongestStreak: 3, TotalEntries: 3, CompletionRate: 100},
		},
		{
			name:  "two entries five days apart",
			dates: []string{day(now, -5), day(now, 0)},
			now:   now,
			want:  models.Stats{CurrentStreak: 1, LongestStreak: 1, TotalEntries: 2, CompletionRate: 33},
		},
		{
			name:  "single entry today",
			dates: []string{day(now, 0)},
			now:   now,
			want:  models.Stats{CurrentStreak: 1, LongestStreak: 1, TotalEntries: 1, CompletionRate: 100},
		},
		{
			name:  "single entry yesterday keeps the streak alive",
			dates: []string{day(now, -1)},
			now:   now,
			want:  models.Stats{CurrentStreak: 1, LongestStreak: 1, TotalEntries: 1, CompletionRate: 50},
		},
		{
			name:  "single entry two days ago",
			dates: []string{day(now, -2)},
			now:   now,
			want:  models.Stats{CurrentStreak: 0, LongestStreak: 1, TotalEntries: 1, CompletionRate: 33},
		},
		{
			name: "three entries ten days after the first midnight",
			dates: []string{"2024-02-29", "2024-03-05", "2024-03-09"},
			now:   time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			want:  models.Stats{CurrentStreak: 1, LongestStreak: 1, TotalEntries: 3, CompletionRate: 30},
		},
		{
			name:  "a two day gap resets the run",
			dates: []string{"2024-03-01", "2024-03-02", "2024-03-03", "2024-03-05", "2024-03-06"},
			now:   now,
			want:  models.Stats{CurrentStreak: 0, LongestStreak: 3, TotalEntries: 5, CompletionRate: 50},
		},
		{
			name:  "duplicates and malformed dates are ignored",
			dates: []string{day(now, 0), day(now, 0), "not-a-date", day(now, -1)},
			now:   now,
			want:  models.Stats{CurrentStreak: 2, LongestStreak: 2, TotalEntries: 2, CompletionRate: 100},
		},
		{
			name:  "runs cross month and year boundaries",
			dates: []string{"2023-12-30", "2023-12-31", "2024-01-01", "2024-01-02"},
			now:   time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC),
			want:  models.Stats{CurrentStreak: 4, LongestStreak: 4, TotalEntries: 4, CompletionRate: 100},
		},
		{
			name:  "first entry today at midnight floors the denominator at one",
			dates: []string{"2024-03-10"},
			now:   time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			want:  models.Stats{CurrentStreak: 1, LongestStreak: 1, TotalEntries: 1, CompletionRate: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateStats(tt.dates, tt.now)
			if got != tt.want {
				t.Errorf("CalculateStats() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// The current streak forgives a missing today but not a missing yesterday.
// This asymmetry is deliberate and matches what users of the browser build saw.
func TestCurrentStreakToleratesOnlyMissingToday(t *testing.T) {
	now := time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC)

	missingToday := CalculateStats([]string{day(now, -3), day(now, -2), day(now, -1)}, now)
	if missingToday.CurrentStreak != 3 {
		t.Errorf("missing today: CurrentStreak = %d, want 3", missingToday.CurrentStreak)
	}

	missingYesterday := CalculateStats([]string{day(now, -3), day(now, -2), day(now, 0)}, now)
	if missingYesterday.CurrentStreak != 1 {
		t.Errorf("missing yesterday: CurrentStreak = %d, want 1", missingYesterday.CurrentStreak)
	}
}

func TestCurrentStreakUsesLocalDate(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	// 2024-03-10 23:30 UTC is already 2024-03-11 in Tokyo
	now := time.Date(2024, 3, 10, 23, 30, 0, 0, time.UTC).In(tokyo)

	got := CalculateStats([]string{"2024-03-11"}, now)
	if got.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1 for the local date", got.CurrentStreak)
	}
}

func TestLongestStreakNeverBelowCurrent(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 500; i++ {
		var dates []string
		for d := -40; d <= 1; d++ {
			if rng.Intn(3) > 0 {
				dates = append(dates, day(now, d))
			}
		}
		stats := CalculateStats(dates, now)
		if stats.LongestStreak < stats.CurrentStreak {
			t.Fatalf("longest %d < current %d for %v", stats.LongestStreak, stats.CurrentStreak, dates)
		}
		if stats.TotalEntries != len(dates) {
			t.Fatalf("TotalEntries = %d, want %d", stats.TotalEntries, len(dates))
		}
	}
}

func TestCompletionRateAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var dates []string
	for d := start; d.Format(constants.DateFormat) <= "2024-06-15"; d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(constants.DateFormat))
	}

	// Spring forward on 2024-03-10 leaves the elapsed time an hour short of
	// whole days just after midnight
	for _, now := range []time.Time{
		time.Date(2024, 6, 15, 0, 30, 0, 0, ny),
		time.Date(2024, 6, 15, 1, 30, 0, 0, ny),
		time.Date(2024, 6, 15, 23, 59, 0, 0, ny),
	} {
		got := CalculateStats(dates, now)
		if got.CompletionRate != 100 {
			t.Errorf("CompletionRate at %s = %d, want 100", now.Format(time.RFC3339), got.CompletionRate)
		}
	}
}
