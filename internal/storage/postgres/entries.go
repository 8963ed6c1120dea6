package postgres

import (
	"database/sql"
	stderrors "errors"
	"fmt"

	"github.com/julianstephens/ledger/internal/constants"
	"github.com/julianstephens/ledger/internal/errors"
	"github.com/julianstephens/ledger/internal/models"
)

const entryColumns = `id, date, work_log, learning_log, time_leak_log, effort_rating,
	free_thought, next_day_context, mood, created_at, updated_at`

func scanEntry(row interface{ Scan(...interface{}) error }) (models.Entry, error) {
	var e models.Entry
	var mood string
	err := row.Scan(&e.ID, &e.Date, &e.WorkLog, &e.LearningLog, &e.TimeLeakLog, &e.EffortRating,
		&e.FreeThought, &e.NextDayContext, &mood, &e.CreatedAt, &e.UpdatedAt)
	e.Mood = constants.Mood(mood)
	return e, err
}

func (s *Store) GetEntry(date string) (models.Entry, error) {
	e, err := scanEntry(s.db.QueryRow("SELECT "+entryColumns+" FROM entries WHERE date = $1", date))
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return models.Entry{}, fmt.Errorf("%w: %s", errors.ErrNotFound, date)
		}
		return models.Entry{}, err
	}
	return e, nil
}

func (s *Store) GetAllEntries() ([]models.Entry, error) {
	return s.queryEntries("SELECT " + entryColumns + " FROM entries ORDER BY date")
}

func (s *Store) GetEntries(startDay, endDay string) ([]models.Entry, error) {
	return s.queryEntries("SELECT "+entryColumns+" FROM entries WHERE date >= $1 AND date <= $2 ORDER BY date",
		startDay, endDay)
}

func (s *Store) queryEntries(query string, args ...interface{}) ([]models.Entry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) SaveEntry(e models.Entry) error {
	_, err := s.db.Exec(`
		INSERT INTO entries (`+entryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (date) DO UPDATE SET
			work_log = EXCLUDED.work_log,
			learning_log = EXCLUDED.learning_log,
			time_leak_log = EXCLUDED.time_leak_log,
			effort_rating = EXCLUDED.effort_rating,
			free_thought = EXCLUDED.free_thought,
			next_day_context = EXCLUDED.next_day_context,
			mood = EXCLUDED.mood,
			updated_at = EXCLUDED.updated_at`,
		e.ID, e.Date, e.WorkLog, e.LearningLog, e.TimeLeakLog, e.EffortRating,
		e.FreeThought, e.NextDayContext, string(e.Mood), e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save entry %s: %w", e.Date, err)
	}
	return nil
}
