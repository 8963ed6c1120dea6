// Package jsonstore keeps the whole ledger in one JSON document, mirroring the
// key-value layout of the browser build's localStorage.
package jsonstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/julianstephens/ledger/internal/errors"
	"github.com/julianstephens/ledger/internal/models"
)

// Document is the on-disk layout. Entries live under the browser build's
// localStorage key (constants.LegacyStorageKey) so the array can be copied
// straight out of a browser profile.
type Document struct {
	Version  int             `json:"version"`
	Settings models.Settings `json:"settings"`
	Entries  []models.Entry  `json:"daily_execution_ledger_v1"`
}

type Store struct {
	path string

	mu       sync.RWMutex
	loaded   bool
	settings models.Settings
	entries  map[string]models.Entry
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		// Already present; adopt it rather than clobbering user data
		return s.Load()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = models.DefaultSettings()
	s.entries = make(map[string]models.Entry)
	s.loaded = true
	return s.flush()
}

func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'ledger init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc, err := Decode(data)
	if err != nil {
		return fmt.Errorf("failed to parse storage %s: %w", s.path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = doc.Settings
	s.entries = make(map[string]models.Entry, len(doc.Entries))
	for _, e := range doc.Entries {
		// Later duplicates win, matching a last-write-wins key-value store
		s.entries[e.Date] = e
	}
	s.loaded = true
	return nil
}

// Decode parses either a Document or a bare entry array (the raw
// localStorage value).
func Decode(data []byte) (Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var entries []models.Entry
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return Document{}, err
		}
		return Document{Version: 1, Settings: models.DefaultSettings(), Entries: entries}, nil
	}

	doc := Document{Settings: models.DefaultSettings()}
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return Document{}, err
	}
	models.ApplyDefaultSettings(&doc.Settings)
	return doc, nil
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) checkLoaded() error {
	if !s.loaded {
		return fmt.Errorf("storage not loaded")
	}
	return nil
}

// flush writes the document atomically. Callers hold the write lock.
func (s *Store) flush() error {
	doc := Document{
		Version:  1,
		Settings: s.settings,
		Entries:  s.sortedEntries(),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace storage: %w", err)
	}
	return nil
}

func (s *Store) sortedEntries() []models.Entry {
	out := make([]models.Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func (s *Store) GetSettings() (models.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkLoaded(); err != nil {
		return models.Settings{}, err
	}
	return s.settings, nil
}

func (s *Store) SaveSettings(settings models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkLoaded(); err != nil {
		return err
	}
	prev := s.settings
	s.settings = settings
	if err := s.flush(); err != nil {
		s.settings = prev
		return err
	}
	return nil
}

func (s *Store) GetEntry(date string) (models.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkLoaded(); err != nil {
		return models.Entry{}, err
	}
	e, ok := s.entries[date]
	if !ok {
		return models.Entry{}, fmt.Errorf("%w: %s", errors.ErrNotFound, date)
	}
	return e, nil
}

func (s *Store) GetAllEntries() ([]models.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkLoaded(); err != nil {
		return nil, err
	}
	return s.sortedEntries(), nil
}

func (s *Store) GetEntries(startDay, endDay string) ([]models.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkLoaded(); err != nil {
		return nil, err
	}

	var out []models.Entry
	for _, e := range s.sortedEntries() {
		if e.Date >= startDay && e.Date <= endDay {
			out = append(out, e)
		}
	}
	return out, nil
}

// SaveEntry replaces the value for e.Date, keeping the stored id and
// creation time when the date already exists.
func (s *Store) SaveEntry(e models.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkLoaded(); err != nil {
		return err
	}

	prev, existed := s.entries[e.Date]
	if existed {
		e.ID = prev.ID
		e.CreatedAt = prev.CreatedAt
	}
	s.entries[e.Date] = e

	if err := s.flush(); err != nil {
		// Roll back so memory matches disk
		if existed {
			s.entries[e.Date] = prev
		} else {
			delete(s.entries, e.Date)
		}
		return err
	}
	return nil
}

func (s *Store) GetConfigPath() string {
	return s.path
}
