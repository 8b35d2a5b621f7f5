// Package calendar implements the appointment calendar widget: local date
// keys, the 42-cell month matrix, the calendar view state machine and the
// add/view/edit appointment editor.
package calendar

import (
	"fmt"
	"time"
)

// DateKeyLayout is the time layout of a date key.
const DateKeyLayout = "2006-01-02"

// DateKey formats t as YYYY-MM-DD using t's own calendar fields. Callers
// must convert t into the display location first; the key is never derived
// from a UTC rendering of t.
func DateKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// DateKeyOf builds the key for a civil date. Out-of-range month and day
// values are normalised the way time.Date does.
func DateKeyOf(year int, month time.Month, day int) string {
	return DateKey(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// ParseDateKey parses a zero-padded key into local midnight in loc.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateKeyLayout, key, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date key %q: %w", key, err)
	}
	if DateKey(t) != key {
		return time.Time{}, fmt.Errorf("parse date key %q: not zero-padded", key)
	}
	return t, nil
}

// ValidDateKey reports whether key is a legal, zero-padded date key.
func ValidDateKey(key string) bool {
	_, err := ParseDateKey(key, time.UTC)
	return err == nil
}

// Today returns the date key of now in loc.
func Today(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return DateKey(now.In(loc))
}
