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
		{name: "empty string returns local", timezone: ""},
		{name: "Local returns local", timezone: "Local"},
		{name: "valid timezone UTC", timezone: "UTC"},
		{name: "valid timezone Asia/Seoul", timezone: "Asia/Seoul"},
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

func TestCalendarDaysBetween(t *testing.T) {
	seoul, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	tests := []struct {
		name string
		a, b time.Time
		loc  *time.Location
		want int
	}{
		{
			name: "same date different times",
			a:    time.Date(2024, 1, 1, 0, 5, 0, 0, seoul),
			b:    time.Date(2024, 1, 1, 23, 55, 0, 0, seoul),
			loc:  seoul,
			want: 0,
		},
		{
			name: "one minute across midnight",
			a:    time.Date(2024, 1, 1, 23, 59, 0, 0, seoul),
			b:    time.Date(2024, 1, 2, 0, 0, 0, 0, seoul),
			loc:  seoul,
			want: 1,
		},
		{
			name: "utc instants viewed in seoul",
			a:    time.Date(2024, 1, 1, 14, 0, 0, 0, time.UTC), // 23:00 KST
			b:    time.Date(2024, 1, 1, 16, 0, 0, 0, time.UTC), // 01:00 KST next day
			loc:  seoul,
			want: 1,
		},
		{
			name: "across spring forward",
			a:    time.Date(2024, 3, 9, 12, 0, 0, 0, ny),
			b:    time.Date(2024, 3, 11, 0, 30, 0, 0, ny),
			loc:  ny,
			want: 2,
		},
		{
			name: "backwards",
			a:    time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			loc:  time.UTC,
			want: -3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalendarDaysBetween(tt.a, tt.b, tt.loc); got != tt.want {
				t.Errorf("CalendarDaysBetween() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLastNDates(t *testing.T) {
	now := time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)
	got := LastNDates(now, 3, time.UTC)
	want := []string{"2024-02-29", "2024-03-01", "2024-03-02"}
	if len(got) != len(want) {
		t.Fatalf("LastNDates() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("LastNDates()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if LastNDates(now, 0, time.UTC) != nil {
		t.Error("LastNDates(0) should be nil")
	}
}

func TestValidateTimezone(t *testing.T) {
	if !ValidateTimezone("Local") || !ValidateTimezone("") || !ValidateTimezone("UTC") {
		t.Error("valid timezones rejected")
	}
	if ValidateTimezone("Mars/Olympus") {
		t.Error("invalid timezone accepted")
	}
}
