package sqlite

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

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row scanner) (models.Entry, error) {
	var e models.Entry
	var mood string
	err := row.Scan(&e.ID, &e.Date, &e.WorkLog, &e.LearningLog, &e.TimeLeakLog, &e.EffortRating,
		&e.FreeThought, &e.NextDayContext, &mood, &e.CreatedAt, &e.UpdatedAt)
	e.Mood = constants.Mood(mood)
	return e, err
}

func (s *Store) GetEntry(date string) (models.Entry, error) {
	row := s.db.QueryRow("SELECT "+entryColumns+" FROM entries WHERE date = ?", date)
	e, err := scanEntry(row)
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
	return s.queryEntries("SELECT "+entryColumns+" FROM entries WHERE date >= ? AND date <= ? ORDER BY date",
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

// SaveEntry upserts on date. The stored id and created_at survive an update.
func (s *Store) SaveEntry(e models.Entry) error {
	_, err := s.db.Exec(`
		INSERT INTO entries (`+entryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			work_log = excluded.work_log,
			learning_log = excluded.learning_log,
			time_leak_log = excluded.time_leak_log,
			effort_rating = excluded.effort_rating,
			free_thought = excluded.free_thought,
			next_day_context = excluded.next_day_context,
			mood = excluded.mood,
			updated_at = excluded.updated_at`,
		e.ID, e.Date, e.WorkLog, e.LearningLog, e.TimeLeakLog, e.EffortRating,
		e.FreeThought, e.NextDayContext, string(e.Mood), e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save entry %s: %w", e.Date, err)
	}
	return nil
}
