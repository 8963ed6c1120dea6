package utils

import (
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/.config/ledger/ledger.db", filepath.Join(home, ".config/ledger/ledger.db")},
		{"/var/lib/ledger.db", "/var/lib/ledger.db"},
		{"~user/ledger.db", "~user/ledger.db"},
		{"postgres://me@localhost/ledger", "postgres://me@localhost/ledger"},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
