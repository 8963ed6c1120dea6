package models

import (
	"time"

	"github.com/julianstephens/ledger/internal/constants"
)

// Entry is one calendar day's ledger record. The JSON field names match the
// payload written by the browser build and must not change.
type Entry struct {
	ID             string         `json:"id,omitempty"`
	Date           string         `json:"date"` // YYYY-MM-DD format
	WorkLog        string         `json:"workLog"`
	LearningLog    string         `json:"learningLog"`
	TimeLeakLog    string         `json:"timeLeakLog"`
	EffortRating   int            `json:"effortRating"`
	FreeThought    string         `json:"freeThought,omitempty"`
	NextDayContext string         `json:"nextDayContext,omitempty"`
	Mood           constants.Mood `json:"mood,omitempty"`
	CreatedAt      int64          `json:"createdAt"` // Unix milliseconds
	UpdatedAt      int64          `json:"updatedAt"` // Unix milliseconds
}

// Created returns CreatedAt as a time.Time.
func (e Entry) Created() time.Time {
	return time.UnixMilli(e.CreatedAt)
}

// Updated returns UpdatedAt as a time.Time.
func (e Entry) Updated() time.Time {
	return time.UnixMilli(e.UpdatedAt)
}

// ApplyContent copies the user-editable fields of draft onto e. Identity and
// timestamps are left untouched.
func (e *Entry) ApplyContent(draft Entry) {
	e.WorkLog = draft.WorkLog
	e.LearningLog = draft.LearningLog
	e.TimeLeakLog = draft.TimeLeakLog
	e.EffortRating = draft.EffortRating
	e.FreeThought = draft.FreeThought
	e.NextDayContext = draft.NextDayContext
	e.Mood = draft.Mood
}

// Dates returns the dates of the given entries in input order.
func Dates(entries []Entry) []string {
	dates := make([]string, 0, len(entries))
	for _, e := range entries {
		dates = append(dates, e.Date)
	}
	return dates
}
