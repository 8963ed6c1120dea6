package utils

import (
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "empty string returns local", timezone: "", wantErr: false},
		{name: "Local returns local", timezone: "Local", wantErr: false},
		{name: "valid timezone UTC", timezone: "UTC", wantErr: false},
		{name: "valid timezone Asia/Tokyo", timezone: "Asia/Tokyo", wantErr: false},
		{name: "invalid timezone", timezone: "Invalid/Timezone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation() returned nil location without error")
			}
		})
	}
}

func TestGetTodayInTimezone(t *testing.T) {
	today, err := GetTodayInTimezone("UTC")
	if err != nil {
		t.Fatalf("GetTodayInTimezone() error = %v", err)
	}
	if !ValidateDateFormat(today) {
		t.Errorf("GetTodayInTimezone() = %q, not a date", today)
	}

	if _, err := GetTodayInTimezone("Nowhere/Special"); err == nil {
		t.Error("expected error for invalid timezone")
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"2024-02-29", false},
		{"2023-02-29", true},
		{"2024-2-1", true},
		{"2024/02/01", true},
		{"", true},
		{"2024-02-01T00:00:00Z", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := ParseDate(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseDate(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
		})
	}
}

func TestParseDateInLocation(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Tokyo")
	got, err := ParseDateInLocation("2024-03-10", loc)
	if err != nil {
		t.Fatal(err)
	}
	if got.Hour() != 0 || got.Location() != loc || got.Day() != 10 {
		t.Errorf("ParseDateInLocation() = %v", got)
	}
}

func TestAddDaysAndDaysBetween(t *testing.T) {
	tests := []struct {
		date string
		n    int
		want string
	}{
		{"2024-03-01", -1, "2024-02-29"},
		{"2024-12-31", 1, "2025-01-01"},
		{"2024-03-10", 0, "2024-03-10"},
	}

	for _, tt := range tests {
		got, err := AddDays(tt.date, tt.n)
		if err != nil {
			t.Fatalf("AddDays(%s, %d) error = %v", tt.date, tt.n, err)
		}
		if got != tt.want {
			t.Errorf("AddDays(%s, %d) = %s, want %s", tt.date, tt.n, got, tt.want)
		}
		diff, err := DaysBetween(tt.date, got)
		if err != nil || diff != tt.n {
			t.Errorf("DaysBetween(%s, %s) = %d, %v; want %d", tt.date, got, diff, err, tt.n)
		}
	}
}

func TestValidateTimezone(t *testing.T) {
	if !ValidateTimezone("Local") || !ValidateTimezone("") || !ValidateTimezone("Europe/Paris") {
		t.Error("expected valid timezones")
	}
	if ValidateTimezone("Mars/Olympus") {
		t.Error("expected invalid timezone")
	}
}

func TestElapsedDays(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	tests := []struct {
		name string
		date string
		now  time.Time
		want float64
	}{
		{"midnight same day", "2024-03-10", time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), 0},
		{"noon next day", "2024-03-10", time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC), 1.5},
		{"after spring forward", "2024-03-10", time.Date(2024, 3, 11, 6, 0, 0, 0, ny), 1.25},
		{"after fall back", "2024-11-03", time.Date(2024, 11, 4, 6, 0, 0, 0, ny), 1.25},
		{"future date", "2024-03-12", time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ElapsedDays(tt.date, tt.now)
			if err != nil {
				t.Fatalf("ElapsedDays() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ElapsedDays(%s, %v) = %v, want %v", tt.date, tt.now, got, tt.want)
			}
		})
	}

	if _, err := ElapsedDays("2024-3-1", time.Now()); err == nil {
		t.Error("expected an error for a malformed date")
	}
}
