package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "simple error",
			err:      errors.New("something went wrong"),
			expected: "Error: something went wrong",
		},
		{
			name:     "wrapped error",
			err:      fmt.Errorf("failed to save: %w", ErrReadOnly),
			expected: "Error: failed to save: date is read-only",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.err)
			if result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	got := Formatf("failed to load %s", "entries")
	if got != "Error: failed to load entries" {
		t.Errorf("Formatf() = %q", got)
	}
}

func TestValidationError(t *testing.T) {
	verr := &ValidationError{}
	if verr.HasErrors() {
		t.Fatal("new ValidationError should be empty")
	}

	verr.Add("workLog", "needs %d more characters", 4)
	verr.Add("effortRating", "must be between 1 and 5")

	if !verr.HasErrors() {
		t.Fatal("expected errors after Add")
	}
	if !errors.Is(verr, ErrValidation) {
		t.Error("ValidationError should match ErrValidation")
	}

	wrapped := fmt.Errorf("save 2024-01-01: %w", verr)
	if !errors.Is(wrapped, ErrValidation) {
		t.Error("wrapped ValidationError should match ErrValidation")
	}

	var target *ValidationError
	if !errors.As(wrapped, &target) || len(target.Fields) != 2 {
		t.Errorf("errors.As failed or lost fields: %+v", target)
	}

	msg := verr.Error()
	if !strings.Contains(msg, "workLog: needs 4 more characters") || !strings.Contains(msg, "effortRating") {
		t.Errorf("unexpected message: %s", msg)
	}
}

func TestPersistence(t *testing.T) {
	if Persistence("save", nil) != nil {
		t.Error("Persistence(nil) should be nil")
	}

	cause := errors.New("database is locked")
	err := Persistence("save entry", cause)
	if !errors.Is(err, ErrPersistence) {
		t.Error("expected ErrPersistence")
	}
	if !errors.Is(err, cause) {
		t.Error("expected underlying cause to be preserved")
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{&ValidationError{Fields: []FieldError{{Field: "date"}}}, "validation"},
		{fmt.Errorf("x: %w", ErrReadOnly), "read_only"},
		{fmt.Errorf("x: %w", ErrNotFound), "not_found"},
		{Persistence("load", errors.New("boom")), "persistence"},
		{errors.New("other"), "internal"},
	}

	for _, tt := range tests {
		if got := Kind(tt.err); got != tt.want {
			t.Errorf("Kind(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
