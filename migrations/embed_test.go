package migrations

import (
	"io/fs"
	"testing"
)

func TestDir(t *testing.T) {
	for _, dialect := range []string{"sqlite", "postgres"} {
		dir, err := Dir(dialect)
		if err != nil {
			t.Fatalf("Dir(%s) error = %v", dialect, err)
		}
		if _, err := fs.Stat(dir, "001_init.sql"); err != nil {
			t.Errorf("Dir(%s) missing 001_init.sql: %v", dialect, err)
		}
	}

	if _, err := Dir("mysql"); err == nil {
		t.Error("expected an error for a dialect without migrations")
	}
}
