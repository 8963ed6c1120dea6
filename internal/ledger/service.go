// Package ledger holds the rules of the execution ledger: the streak and
// completion statistics, the two-day edit window, and the Service that
// validates and upserts entries through a storage.Provider.
package ledger

import (
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/ledger/internal/constants"
	"github.com/julianstephens/ledger/internal/errors"
	"github.com/julianstephens/ledger/internal/logger"
	"github.com/julianstephens/ledger/internal/models"
	"github.com/julianstephens/ledger/internal/storage"
	"github.com/julianstephens/ledger/internal/utils"
	"github.com/julianstephens/ledger/internal/validation"
)

// Service is the only writer the CLI, TUI and HTTP surfaces use.
// Writes are serialised so each save sees the latest stored timestamps.
type Service struct {
	store     storage.Provider
	validator *validation.Validator
	now       func() time.Time
	newID     func() string

	mu sync.Mutex
}

// Option configures a Service
type Option func(*Service)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator replaces the UUID generator
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) { s.newID = gen }
}

func NewService(store storage.Provider, validator *validation.Validator, opts ...Option) *Service {
	s := &Service{
		store:     store,
		validator: validator,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store exposes the underlying provider for read-only consumers such as backups.
func (s *Service) Store() storage.Provider {
	return s.store
}

// Validator returns the validator drafts are checked with.
func (s *Service) Validator() *validation.Validator {
	return s.validator
}

// Now returns the current instant in the configured timezone.
func (s *Service) Now() (time.Time, error) {
	settings, err := s.store.GetSettings()
	if err != nil {
		return time.Time{}, errors.Persistence("load settings", err)
	}
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", settings.Timezone, err)
	}
	return s.now().In(loc), nil
}

// Today returns today's date in the configured timezone.
func (s *Service) Today() (string, error) {
	now, err := s.Now()
	if err != nil {
		return "", err
	}
	return now.Format(constants.DateFormat), nil
}

// IsEditable applies the two-day edit window to date.
func (s *Service) IsEditable(date string) (bool, error) {
	today, err := s.Today()
	if err != nil {
		return false, err
	}
	return IsEditable(date, today), nil
}

func (s *Service) checkEditable(date string) error {
	today, err := s.Today()
	if err != nil {
		return err
	}
	if !IsEditable(date, today) {
		return fmt.Errorf("%w: %s (today is %s)", errors.ErrReadOnly, date, today)
	}
	return nil
}

// stamp returns a millisecond timestamp strictly after prev.
func (s *Service) stamp(prev int64) int64 {
	ms := s.now().UnixMilli()
	if ms <= prev {
		ms = prev + 1
	}
	return ms
}

func (s *Service) lookup(date string) (models.Entry, bool, error) {
	e, err := s.store.GetEntry(date)
	switch {
	case err == nil:
		return e, true, nil
	case stderrors.Is(err, errors.ErrNotFound):
		return models.Entry{}, false, nil
	default:
		return models.Entry{}, false, errors.Persistence("load entry "+date, err)
	}
}

// Save validates draft, checks the edit window and upserts it. An existing
// entry keeps its id and createdAt; updatedAt always moves forward.
// On failure nothing is written and the caller still owns the draft.
func (s *Service) Save(draft models.Entry) (models.Entry, error) {
	if err := s.validator.ValidateEntry(draft); err != nil {
		return models.Entry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkEditable(draft.Date); err != nil {
		return models.Entry{}, err
	}

	existing, found, err := s.lookup(draft.Date)
	if err != nil {
		return models.Entry{}, err
	}

	var entry models.Entry
	if found {
		entry = existing
		entry.ApplyContent(draft)
		entry.UpdatedAt = s.stamp(existing.UpdatedAt)
	} else {
		entry = models.Entry{Date: draft.Date}
		entry.ApplyContent(draft)
		entry.ID = s.newID()
		entry.CreatedAt = s.stamp(0)
		entry.UpdatedAt = entry.CreatedAt
	}

	if err := s.store.SaveEntry(entry); err != nil {
		return models.Entry{}, errors.Persistence("save entry "+draft.Date, err)
	}

	logger.Info("Entry saved", "date", entry.Date, "created", !found, "effort", entry.EffortRating)
	return entry, nil
}

// SetQuest replaces only the next-day context of an existing, editable entry.
func (s *Service) SetQuest(date, quest string) (models.Entry, error) {
	if err := s.validator.ValidateDate(date); err != nil {
		return models.Entry{}, err
	}
	if err := s.validator.ValidateQuest(quest); err != nil {
		return models.Entry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkEditable(date); err != nil {
		return models.Entry{}, err
	}

	entry, found, err := s.lookup(date)
	if err != nil {
		return models.Entry{}, err
	}
	if !found {
		return models.Entry{}, fmt.Errorf("%w: %s", errors.ErrNotFound, date)
	}

	entry.NextDayContext = quest
	entry.UpdatedAt = s.stamp(entry.UpdatedAt)
	if err := s.store.SaveEntry(entry); err != nil {
		return models.Entry{}, errors.Persistence("save quest "+date, err)
	}

	logger.Info("Quest saved", "date", date)
	return entry, nil
}

// Entry returns the entry for date.
func (s *Service) Entry(date string) (models.Entry, error) {
	if err := s.validator.ValidateDate(date); err != nil {
		return models.Entry{}, err
	}
	entry, found, err := s.lookup(date)
	if err != nil {
		return models.Entry{}, err
	}
	if !found {
		return models.Entry{}, fmt.Errorf("%w: %s", errors.ErrNotFound, date)
	}
	return entry, nil
}

// Entries returns every entry in ascending date order.
func (s *Service) Entries() ([]models.Entry, error) {
	entries, err := s.store.GetAllEntries()
	if err != nil {
		return nil, errors.Persistence("load entries", err)
	}
	return entries, nil
}

// EntriesBetween returns entries with start <= date <= end.
func (s *Service) EntriesBetween(start, end string) ([]models.Entry, error) {
	verr := &errors.ValidationError{}
	if !utils.ValidateDateFormat(start) {
		verr.Add("start", "must be a YYYY-MM-DD date, got %q", start)
	}
	if !utils.ValidateDateFormat(end) {
		verr.Add("end", "must be a YYYY-MM-DD date, got %q", end)
	}
	if verr.HasErrors() {
		return nil, verr
	}

	entries, err := s.store.GetEntries(start, end)
	if err != nil {
		return nil, errors.Persistence("load entries", err)
	}
	return entries, nil
}

// Stats computes streaks and completion rate as of now.
func (s *Service) Stats() (models.Stats, error) {
	entries, err := s.Entries()
	if err != nil {
		return models.Stats{}, err
	}
	now, err := s.Now()
	if err != nil {
		return models.Stats{}, err
	}
	return CalculateStats(models.Dates(entries), now), nil
}

// ImportResult counts what Import did
type ImportResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

// Import upserts entries without the edit window, for restores and
// migrations from the browser payload. Dates must be valid and unique within
// the batch. Incoming ids and timestamps are kept when present.
func (s *Service) Import(entries []models.Entry) (ImportResult, error) {
	verr := &errors.ValidationError{}
	seen := make(map[string]struct{}, len(entries))
	for i, e := range entries {
		field := fmt.Sprintf("entries[%d]", i)
		if !utils.ValidateDateFormat(e.Date) {
			verr.Add(field, "invalid date %q", e.Date)
			continue
		}
		if _, dup := seen[e.Date]; dup {
			verr.Add(field, "duplicate date %s", e.Date)
		}
		seen[e.Date] = struct{}{}
		if e.EffortRating < constants.EffortMin || e.EffortRating > constants.EffortMax {
			verr.Add(field, "effort rating %d out of range", e.EffortRating)
		}
	}
	if verr.HasErrors() {
		return ImportResult{}, verr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var result ImportResult
	for _, in := range entries {
		existing, found, err := s.lookup(in.Date)
		if err != nil {
			return result, err
		}

		entry := in
		if found {
			entry.ID = existing.ID
			entry.CreatedAt = existing.CreatedAt
			if entry.UpdatedAt <= existing.UpdatedAt {
				entry.UpdatedAt = s.stamp(existing.UpdatedAt)
			}
		} else {
			if entry.ID == "" {
				entry.ID = s.newID()
			}
			if entry.CreatedAt == 0 {
				entry.CreatedAt = s.stamp(0)
			}
			if entry.UpdatedAt < entry.CreatedAt {
				entry.UpdatedAt = entry.CreatedAt
			}
		}

		if err := s.store.SaveEntry(entry); err != nil {
			return result, errors.Persistence("import entry "+in.Date, err)
		}
		if found {
			result.Updated++
		} else {
			result.Created++
		}
	}

	logger.Info("Import finished", "created", result.Created, "updated", result.Updated)
	return result, nil
}
