package utils

import (
	"time"

	"github.com/gamttori/gamttori/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// DateString formats t as YYYY-MM-DD in loc.
func DateString(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(constants.DateFormat)
}

// CalendarDaysBetween counts calendar dates from a to b as seen in loc.
// Each date is projected onto UTC before subtracting so DST transitions
// never produce a 23 or 25 hour day.
func CalendarDaysBetween(a, b time.Time, loc *time.Location) int {
	a, b = a.In(loc), b.In(loc)
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua) / (24 * time.Hour))
}

// LastNDates returns the n calendar dates ending at now, oldest first.
func LastNDates(now time.Time, n int, loc *time.Location) []string {
	if n <= 0 {
		return nil
	}
	now = now.In(loc)
	dates := make([]string, n)
	for i := 0; i < n; i++ {
		d := time.Date(now.Year(), now.Month(), now.Day()-(n-1-i), 12, 0, 0, 0, loc)
		dates[i] = d.Format(constants.DateFormat)
	}
	return dates
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
