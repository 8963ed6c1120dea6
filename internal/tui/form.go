package tui

import (
	stderrors "errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/ledger/internal/config"
	"github.com/julianstephens/ledger/internal/constants"
	"github.com/julianstephens/ledger/internal/models"
)

// defaultEffort preselects the middle of the scale for a new entry
const defaultEffort = 3

// EntryFormModel holds the values bound to the entry form fields
type EntryFormModel struct {
	WorkLog        string
	LearningLog    string
	TimeLeakLog    string
	FreeThought    string
	NextDayContext string
	Effort         int
	Mood           constants.Mood
}

// NewEntryFormModel copies the editable content of e into a form model
func NewEntryFormModel(e models.Entry) *EntryFormModel {
	effort := e.EffortRating
	if effort < constants.EffortMin || effort > constants.EffortMax {
		effort = defaultEffort
	}
	return &EntryFormModel{
		WorkLog:        e.WorkLog,
		LearningLog:    e.LearningLog,
		TimeLeakLog:    e.TimeLeakLog,
		FreeThought:    e.FreeThought,
		NextDayContext: e.NextDayContext,
		Effort:         effort,
		Mood:           e.Mood,
	}
}

// Apply writes the form values back onto e
func (fm *EntryFormModel) Apply(e *models.Entry) {
	e.WorkLog = strings.TrimSpace(fm.WorkLog)
	e.LearningLog = strings.TrimSpace(fm.LearningLog)
	e.TimeLeakLog = strings.TrimSpace(fm.TimeLeakLog)
	e.FreeThought = strings.TrimSpace(fm.FreeThought)
	e.NextDayContext = strings.TrimSpace(fm.NextDayContext)
	e.EffortRating = fm.Effort
	e.Mood = fm.Mood
}

func validateWork(limits config.LimitsConfig) func(string) error {
	return func(s string) error {
		n := utf8.RuneCountInString(strings.TrimSpace(s))
		if n < limits.WorkMin {
			return fmt.Errorf("needs %d more characters", limits.WorkMin-n)
		}
		if utf8.RuneCountInString(s) > limits.WorkMax {
			return fmt.Errorf("keep it under %d characters", limits.WorkMax)
		}
		return nil
	}
}

func validateRequired(max int) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("required")
		}
		if utf8.RuneCountInString(s) > max {
			return fmt.Errorf("keep it under %d characters", max)
		}
		return nil
	}
}

func validateMax(max int) func(string) error {
	return func(s string) error {
		if utf8.RuneCountInString(s) > max {
			return fmt.Errorf("keep it under %d characters", max)
		}
		return nil
	}
}

func moodOptions() []huh.Option[constants.Mood] {
	opts := []huh.Option[constants.Mood]{huh.NewOption("(none)", constants.Mood(""))}
	for _, m := range constants.Moods {
		opts = append(opts, huh.NewOption(string(m), m))
	}
	return opts
}

func effortOptions() []huh.Option[int] {
	opts := make([]huh.Option[int], 0, constants.EffortMax)
	for i := constants.EffortMin; i <= constants.EffortMax; i++ {
		label := fmt.Sprintf("%d %s", i, strings.Repeat("●", i)+strings.Repeat("○", constants.EffortMax-i))
		opts = append(opts, huh.NewOption(label, i))
	}
	return opts
}

// NewEntryForm creates the two-page entry form bound to fm
func NewEntryForm(fm *EntryFormModel, limits config.LimitsConfig) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Work log").
				Description("What did you ship? Tag skills with hashtags, e.g. "+strings.Join(constants.QuickTags[:3], " ")).
				CharLimit(limits.WorkMax).
				Value(&fm.WorkLog).
				Validate(validateWork(limits)),
			huh.NewText().
				Title("Learning log").
				Description("What did you learn?").
				CharLimit(limits.LearnMax).
				Value(&fm.LearningLog).
				Validate(validateRequired(limits.LearnMax)),
			huh.NewText().
				Title("Time leaks").
				Description("One per line: "+strings.Join(constants.TimeLeaks, ", ")).
				CharLimit(limits.LeakMax).
				Value(&fm.TimeLeakLog).
				Validate(validateRequired(limits.LeakMax)),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Effort").
				Options(effortOptions()...).
				Value(&fm.Effort),
			huh.NewSelect[constants.Mood]().
				Title("Mood").
				Options(moodOptions()...).
				Value(&fm.Mood),
			huh.NewText().
				Title("Free thought").
				CharLimit(limits.ThoughtMax).
				Value(&fm.FreeThought).
				Validate(validateMax(limits.ThoughtMax)),
			huh.NewInput().
				Title("Tomorrow's quest").
				CharLimit(limits.ContextMax).
				Value(&fm.NextDayContext).
				Validate(validateMax(limits.ContextMax)),
		),
	).WithTheme(huh.ThemeDracula())
}

// ErrFormCancelled is returned when the user aborts the entry form
var ErrFormCancelled = stderrors.New("entry form cancelled")

// RunEntryForm runs the entry form standalone and applies the answers to
// draft. The draft is left unchanged if the form is cancelled.
func RunEntryForm(draft *models.Entry, limits config.LimitsConfig) error {
	fm := NewEntryFormModel(*draft)
	if err := NewEntryForm(fm, limits).Run(); err != nil {
		if stderrors.Is(err, huh.ErrUserAborted) {
			return ErrFormCancelled
		}
		return fmt.Errorf("entry form failed: %w", err)
	}
	fm.Apply(draft)
	return nil
}
