package ledger

import (
	stderrors "errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/julianstephens/ledger/internal/config"
	"github.com/julianstephens/ledger/internal/constants"
	"github.com/julianstephens/ledger/internal/errors"
	"github.com/julianstephens/ledger/internal/models"
	"github.com/julianstephens/ledger/internal/storage"
	"github.com/julianstephens/ledger/internal/storage/jsonstore"
	"github.com/julianstephens/ledger/internal/validation"
)

// flakyStore fails writes on demand
type flakyStore struct {
	storage.Provider
	failSave bool
	saves    int
}

func (f *flakyStore) SaveEntry(e models.Entry) error {
	if f.failSave {
		return fmt.Errorf("disk full")
	}
	f.saves++
	return f.Provider.SaveEntry(e)
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func setupService(t *testing.T) (*Service, *flakyStore, *testClock) {
	t.Helper()
	js := jsonstore.NewStore(filepath.Join(t.TempDir(), "ledger.json"))
	if err := js.Init(); err != nil {
		t.Fatal(err)
	}
	settings := models.DefaultSettings()
	settings.Timezone = "UTC"
	if err := js.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}

	store := &flakyStore{Provider: js}
	clock := &testClock{now: time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)}
	ids := 0
	svc := NewService(store, validation.New(config.DefaultConfig().Limits),
		WithClock(clock.Now),
		WithIDGenerator(func() string {
			ids++
			return fmt.Sprintf("entry-%d", ids)
		}),
	)
	return svc, store, clock
}

func draft(date string) models.Entry {
	return models.Entry{
		Date:         date,
		WorkLog:      "Implemented the upsert path #golang",
		LearningLog:  "millisecond clocks can repeat",
		TimeLeakLog:  "Overthinking",
		EffortRating: 4,
		Mood:         constants.MoodFlow,
	}
}

func TestSaveCreatesEntry(t *testing.T) {
	svc, _, clock := setupService(t)

	saved, err := svc.Save(draft("2024-03-10"))
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if saved.ID != "entry-1" {
		t.Errorf("ID = %q, want generated id", saved.ID)
	}
	if saved.CreatedAt != clock.Now().UnixMilli() || saved.CreatedAt != saved.UpdatedAt {
		t.Errorf("new entry timestamps: created=%d updated=%d", saved.CreatedAt, saved.UpdatedAt)
	}

	got, err := svc.Entry("2024-03-10")
	if err != nil {
		t.Fatal(err)
	}
	if got != saved {
		t.Errorf("Entry() = %+v, want %+v", got, saved)
	}
}

func TestResavePreservesIdentity(t *testing.T) {
	svc, _, clock := setupService(t)

	first, err := svc.Save(draft("2024-03-10"))
	if err != nil {
		t.Fatal(err)
	}

	clock.Set(clock.Now().Add(time.Minute))
	d := draft("2024-03-10")
	d.WorkLog = "Reworked the upsert path twice"
	d.ID = "client-supplied"
	d.CreatedAt = 1
	second, err := svc.Save(d)
	if err != nil {
		t.Fatal(err)
	}

	if second.ID != first.ID || second.CreatedAt != first.CreatedAt {
		t.Errorf("identity changed: first=%+v second=%+v", first, second)
	}
	if second.UpdatedAt <= first.UpdatedAt {
		t.Errorf("UpdatedAt did not advance: %d -> %d", first.UpdatedAt, second.UpdatedAt)
	}
	if second.WorkLog != d.WorkLog {
		t.Errorf("content not updated")
	}

	all, _ := svc.Entries()
	if len(all) != 1 {
		t.Errorf("expected a single entry per date, got %d", len(all))
	}
}

func TestResaveWithinSameMillisecond(t *testing.T) {
	svc, _, _ := setupService(t)

	first, err := svc.Save(draft("2024-03-10"))
	if err != nil {
		t.Fatal(err)
	}
	// The clock does not move between saves
	second, err := svc.Save(draft("2024-03-10"))
	if err != nil {
		t.Fatal(err)
	}
	if second.UpdatedAt <= first.UpdatedAt {
		t.Errorf("UpdatedAt must strictly increase: %d -> %d", first.UpdatedAt, second.UpdatedAt)
	}
}

func TestSaveEditWindow(t *testing.T) {
	svc, store, _ := setupService(t)

	tests := []struct {
		date     string
		readOnly bool
	}{
		{"2024-03-10", false},
		{"2024-03-09", false},
		{"2024-03-08", true},
		{"2024-03-11", true},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			before := store.saves
			_, err := svc.Save(draft(tt.date))
			if tt.readOnly {
				if !stderrors.Is(err, errors.ErrReadOnly) {
					t.Errorf("Save(%s) error = %v, want ErrReadOnly", tt.date, err)
				}
				if store.saves != before {
					t.Error("read-only save reached the store")
				}
				return
			}
			if err != nil {
				t.Errorf("Save(%s) unexpected error: %v", tt.date, err)
			}
		})
	}
}

func TestSaveValidationNeverReachesStore(t *testing.T) {
	svc, store, _ := setupService(t)

	d := draft("2024-03-10")
	d.WorkLog = "short"
	d.EffortRating = 0

	_, err := svc.Save(d)
	if !stderrors.Is(err, errors.ErrValidation) {
		t.Fatalf("Save() error = %v, want ErrValidation", err)
	}
	if store.saves != 0 {
		t.Errorf("store saw %d writes", store.saves)
	}

	var verr *errors.ValidationError
	if !stderrors.As(err, &verr) || len(verr.Fields) != 2 {
		t.Errorf("expected two field errors, got %v", err)
	}
}

func TestSavePersistenceFailure(t *testing.T) {
	svc, store, _ := setupService(t)
	store.failSave = true

	d := draft("2024-03-10")
	_, err := svc.Save(d)
	if !stderrors.Is(err, errors.ErrPersistence) {
		t.Fatalf("Save() error = %v, want ErrPersistence", err)
	}
	if errors.Kind(err) != "persistence" {
		t.Errorf("Kind = %q", errors.Kind(err))
	}
	if d.WorkLog != draft("2024-03-10").WorkLog {
		t.Error("draft mutated")
	}
	if _, err := svc.Entry("2024-03-10"); !stderrors.Is(err, errors.ErrNotFound) {
		t.Errorf("failed save left a record behind: %v", err)
	}
}

func TestSetQuest(t *testing.T) {
	svc, _, clock := setupService(t)

	if _, err := svc.SetQuest("2024-03-10", "Ship the export"); !stderrors.Is(err, errors.ErrNotFound) {
		t.Errorf("SetQuest() without entry = %v, want ErrNotFound", err)
	}

	saved, err := svc.Save(draft("2024-03-10"))
	if err != nil {
		t.Fatal(err)
	}
	clock.Set(clock.Now().Add(time.Second))

	updated, err := svc.SetQuest("2024-03-10", "Ship the export")
	if err != nil {
		t.Fatalf("SetQuest() failed: %v", err)
	}
	if updated.NextDayContext != "Ship the export" || updated.WorkLog != saved.WorkLog {
		t.Errorf("unexpected quest result: %+v", updated)
	}
	if updated.UpdatedAt <= saved.UpdatedAt || updated.CreatedAt != saved.CreatedAt {
		t.Errorf("timestamps wrong: %+v", updated)
	}

	if _, err := svc.SetQuest("2024-03-01", "too late"); !stderrors.Is(err, errors.ErrReadOnly) {
		t.Errorf("SetQuest() on old date = %v, want ErrReadOnly", err)
	}
}

func TestStatsUsesClock(t *testing.T) {
	svc, _, clock := setupService(t)

	clock.Set(time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC))
	if _, err := svc.Save(draft("2024-03-08")); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Save(draft("2024-03-09")); err != nil {
		t.Fatal(err)
	}

	clock.Set(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	stats, err := svc.Stats()
	if err != nil {
		t.Fatal(err)
	}
	want := models.Stats{CurrentStreak: 2, LongestStreak: 2, TotalEntries: 2, CompletionRate: 100}
	if stats != want {
		t.Errorf("Stats() = %+v, want %+v", stats, want)
	}

	editable, err := svc.IsEditable("2024-03-08")
	if err != nil || editable {
		t.Errorf("IsEditable(2024-03-08) = %v, %v; want false", editable, err)
	}
}

func TestImportBypassesEditWindow(t *testing.T) {
	svc, _, _ := setupService(t)

	old := draft("2023-01-15")
	old.ID = "legacy-id"
	old.CreatedAt = 1673740800000
	old.UpdatedAt = 1673740800000

	noID := draft("2023-01-16")

	res, err := svc.Import([]models.Entry{old, noID})
	if err != nil {
		t.Fatalf("Import() failed: %v", err)
	}
	if res.Created != 2 || res.Updated != 0 {
		t.Errorf("Import() = %+v", res)
	}

	got, _ := svc.Entry("2023-01-15")
	if got.ID != "legacy-id" || got.CreatedAt != old.CreatedAt {
		t.Errorf("imported identity lost: %+v", got)
	}
	got, _ = svc.Entry("2023-01-16")
	if got.ID == "" || got.CreatedAt == 0 || got.UpdatedAt < got.CreatedAt {
		t.Errorf("missing identity not filled: %+v", got)
	}

	// Re-import updates in place
	old.WorkLog = "Re-imported legacy entry"
	res, err = svc.Import([]models.Entry{old})
	if err != nil || res.Updated != 1 {
		t.Fatalf("re-import = %+v, %v", res, err)
	}
	got, _ = svc.Entry("2023-01-15")
	if got.WorkLog != old.WorkLog || got.UpdatedAt <= old.UpdatedAt {
		t.Errorf("re-import result: %+v", got)
	}
}

func TestImportRejectsBadBatch(t *testing.T) {
	svc, store, _ := setupService(t)

	bad := draft("2023-13-01")
	dup := draft("2023-01-01")
	_, err := svc.Import([]models.Entry{bad, dup, dup})
	if !stderrors.Is(err, errors.ErrValidation) {
		t.Fatalf("Import() error = %v, want ErrValidation", err)
	}
	if store.saves != 0 {
		t.Error("invalid batch reached the store")
	}
}

func TestEntriesBetween(t *testing.T) {
	svc, _, _ := setupService(t)
	if _, err := svc.Save(draft("2024-03-09")); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Save(draft("2024-03-10")); err != nil {
		t.Fatal(err)
	}

	got, err := svc.EntriesBetween("2024-03-10", "2024-03-31")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Date != "2024-03-10" {
		t.Errorf("EntriesBetween() = %v", models.Dates(got))
	}

	if _, err := svc.EntriesBetween("march", "2024-03-31"); !stderrors.Is(err, errors.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestConcurrentSavesKeepSingleRecord(t *testing.T) {
	svc, _, _ := setupService(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Save(draft("2024-03-10")); err != nil {
				t.Errorf("Save() failed: %v", err)
			}
		}()
	}
	wg.Wait()

	all, _ := svc.Entries()
	if len(all) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(all))
	}
	// 20 saves within one millisecond must still produce strictly increasing stamps
	if all[0].UpdatedAt-all[0].CreatedAt != 19 {
		t.Errorf("UpdatedAt - CreatedAt = %d, want 19", all[0].UpdatedAt-all[0].CreatedAt)
	}
}
