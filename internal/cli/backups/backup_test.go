package backups

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/ledger/internal/cli"
	"github.com/julianstephens/ledger/internal/models"
	"github.com/julianstephens/ledger/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer, func()) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "ledger.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	ctx := cli.NewContext(store, nil)
	out := &bytes.Buffer{}
	ctx.Out = out

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}
	return ctx, out, cleanup
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, out, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No backups found.") {
		t.Errorf("unexpected output: %q", out.String())
	}

	out.Reset()
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup create failed: %v", err)
	}
	if !strings.Contains(out.String(), "✓ Backup created: ledger-") {
		t.Errorf("unexpected output: %q", out.String())
	}

	out.Reset()
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Available backups (1 total") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestBackupRestore(t *testing.T) {
	ctx, out, cleanup := setupTestDB(t)
	defer cleanup()

	if err := ctx.Store.SaveEntry(models.Entry{ID: "a", Date: "2024-03-01", WorkLog: "Before the backup", EffortRating: 3, CreatedAt: 1, UpdatedAt: 1}); err != nil {
		t.Fatal(err)
	}
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	name := strings.TrimSpace(strings.TrimPrefix(out.String(), "✓ Backup created: "))

	if err := ctx.Store.SaveEntry(models.Entry{ID: "b", Date: "2024-03-02", WorkLog: "After the backup", EffortRating: 3, CreatedAt: 2, UpdatedAt: 2}); err != nil {
		t.Fatal(err)
	}

	// Declining leaves the store alone
	out.Reset()
	ctx.In = strings.NewReader("n\n")
	if err := (&BackupRestoreCmd{BackupFile: name}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Restore cancelled.") {
		t.Errorf("unexpected output: %q", out.String())
	}

	out.Reset()
	if err := (&BackupRestoreCmd{BackupFile: name, Yes: true}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if !strings.Contains(out.String(), "Database restored successfully") {
		t.Errorf("unexpected output: %q", out.String())
	}

	if err := ctx.Store.Load(); err != nil {
		t.Fatal(err)
	}
	entries, err := ctx.Store.GetAllEntries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Date != "2024-03-01" {
		t.Errorf("restored entries = %+v", entries)
	}
}

func TestBackupRestoreMissingFile(t *testing.T) {
	ctx, _, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&BackupRestoreCmd{BackupFile: "ledger-19990101-000000.db", Yes: true}).Run(ctx); err == nil {
		t.Error("expected error for missing backup")
	}
}
