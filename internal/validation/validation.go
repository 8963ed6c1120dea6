package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/julianstephens/ledger/internal/config"
	"github.com/julianstephens/ledger/internal/constants"
	"github.com/julianstephens/ledger/internal/errors"
	"github.com/julianstephens/ledger/internal/models"
	"github.com/julianstephens/ledger/internal/utils"
)

// Validator checks entry drafts against the configured field limits
type Validator struct {
	limits config.LimitsConfig
}

// New creates a new Validator
func New(limits config.LimitsConfig) *Validator {
	return &Validator{limits: limits}
}

// Limits returns the limits the validator enforces
func (v *Validator) Limits() config.LimitsConfig {
	return v.limits
}

// ValidateDate checks that date is a strict YYYY-MM-DD calendar date
func (v *Validator) ValidateDate(date string) error {
	verr := &errors.ValidationError{}
	v.checkDate(verr, date)
	if verr.HasErrors() {
		return verr
	}
	return nil
}

// ValidateEntry checks every field of a draft and returns a single
// *errors.ValidationError listing all problems, or nil.
func (v *Validator) ValidateEntry(e models.Entry) error {
	verr := &errors.ValidationError{}

	v.checkDate(verr, e.Date)

	work := utf8.RuneCountInString(strings.TrimSpace(e.WorkLog))
	switch {
	case work < v.limits.WorkMin:
		verr.Add("workLog", "needs %d more characters (minimum %d)", v.limits.WorkMin-work, v.limits.WorkMin)
	case utf8.RuneCountInString(e.WorkLog) > v.limits.WorkMax:
		verr.Add("workLog", "exceeds %d characters", v.limits.WorkMax)
	}

	checkRequired(verr, "learningLog", e.LearningLog, v.limits.LearnMax)
	checkRequired(verr, "timeLeakLog", e.TimeLeakLog, v.limits.LeakMax)
	checkMax(verr, "freeThought", e.FreeThought, v.limits.ThoughtMax)
	checkMax(verr, "nextDayContext", e.NextDayContext, v.limits.ContextMax)

	if e.EffortRating < constants.EffortMin || e.EffortRating > constants.EffortMax {
		verr.Add("effortRating", "must be between %d and %d", constants.EffortMin, constants.EffortMax)
	}

	if e.Mood != "" && !ValidMood(e.Mood) {
		verr.Add("mood", "unknown mood %q", string(e.Mood))
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}

// ValidateQuest checks a next-day context on its own
func (v *Validator) ValidateQuest(text string) error {
	verr := &errors.ValidationError{}
	checkMax(verr, "nextDayContext", text, v.limits.ContextMax)
	if verr.HasErrors() {
		return verr
	}
	return nil
}

// ValidMood reports whether m is one of the accepted moods
func ValidMood(m constants.Mood) bool {
	for _, known := range constants.Moods {
		if m == known {
			return true
		}
	}
	return false
}

func (v *Validator) checkDate(verr *errors.ValidationError, date string) {
	if date == "" {
		verr.Add("date", "is required")
		return
	}
	if !utils.ValidateDateFormat(date) {
		verr.Add("date", "must be a YYYY-MM-DD date, got %q", date)
	}
}

func checkRequired(verr *errors.ValidationError, field, value string, max int) {
	if strings.TrimSpace(value) == "" {
		verr.Add(field, "is required")
		return
	}
	checkMax(verr, field, value, max)
}

func checkMax(verr *errors.ValidationError, field, value string, max int) {
	if utf8.RuneCountInString(value) > max {
		verr.Add(field, "exceeds %d characters", max)
	}
}
