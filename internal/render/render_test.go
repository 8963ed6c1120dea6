package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/ledger/internal/constants"
	"github.com/julianstephens/ledger/internal/models"
)

func TestEntryMarkdown(t *testing.T) {
	e := models.Entry{
		Date:           "2024-03-01",
		WorkLog:        "Shipped the importer #go",
		LearningLog:    "  ",
		EffortRating:   4,
		Mood:           constants.MoodFlow,
		NextDayContext: "Write docs",
	}

	md := EntryMarkdown(e)
	assert.True(t, strings.HasPrefix(md, "# 2024-03-01\n"))
	assert.Contains(t, md, "●●●●○ 4/5")
	assert.Contains(t, md, "**Mood** flow")
	assert.Contains(t, md, "## Work\n\nShipped the importer #go")
	assert.Contains(t, md, "## Tomorrow's quest\n\nWrite docs")
	assert.NotContains(t, md, "## Learning")
	assert.NotContains(t, md, "## Time leaks")
}

func TestEffortBar(t *testing.T) {
	assert.Equal(t, "○○○○○", EffortBar(0))
	assert.Equal(t, "●●○○○", EffortBar(2))
	assert.Equal(t, "●●●●●", EffortBar(9))
}

func TestSparkline(t *testing.T) {
	got := []rune(Sparkline([]int{0, 1, 2, 3, 4, 5, -1}))
	require.Len(t, got, 7)
	assert.Equal(t, ' ', got[0])
	assert.Equal(t, '█', got[5])
	assert.Equal(t, ' ', got[6])
	for i := 1; i < 5; i++ {
		assert.Less(t, got[i], got[i+1], "blocks should rise with effort")
	}
}

func TestRendererEntry(t *testing.T) {
	for _, theme := range []string{constants.ThemeLight, constants.ThemeDark, "unknown"} {
		r, err := New(theme, 60)
		require.NoError(t, err)

		out, err := r.Entry(models.Entry{Date: "2024-03-01", WorkLog: "Refactored the storage layer", EffortRating: 3})
		require.NoError(t, err)
		assert.Contains(t, out, "Refactored")
	}
}
