package domain

import (
	"errors"
	"time"
)

var (
	ErrInvalidDateKey = errors.New("invalid date key (expected YYYY-MM-DD)")
)

// DateKeyLayout is the canonical calendar-date format used for every lookup key.
const DateKeyLayout = "2006-01-02"

// DateKey formats t as a calendar date in its own location.
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// ParseDateKey parses a key into midnight UTC of that calendar date. Keys carry
// no zone; UTC is used only so day arithmetic never crosses a DST boundary.
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.Parse(DateKeyLayout, key)
	if err != nil {
		return time.Time{}, ErrInvalidDateKey
	}
	return t, nil
}

func IsDateKey(key string) bool {
	_, err := ParseDateKey(key)
	return err == nil
}

// AddDays shifts a date key by n calendar days.
func AddDays(key string, n int) (string, error) {
	t, err := ParseDateKey(key)
	if err != nil {
		return "", err
	}
	return DateKey(t.AddDate(0, 0, n)), nil
}

// LastNDateKeys returns the n calendar dates ending at now (inclusive), oldest
// first, as seen in loc.
func LastNDateKeys(now time.Time, loc *time.Location, n int) []string {
	if n <= 0 {
		return []string{}
	}
	if loc == nil {
		loc = time.Local
	}

	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)

	keys := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		keys = append(keys, DateKey(today.AddDate(0, 0, -i)))
	}
	return keys
}

// WeekStartKey returns the Sunday that starts the week containing key.
func WeekStartKey(key string) (string, error) {
	t, err := ParseDateKey(key)
	if err != nil {
		return "", err
	}
	return DateKey(t.AddDate(0, 0, -int(t.Weekday()))), nil
}

// MonthPrefix returns the YYYY-MM part of a date key.
func MonthPrefix(key string) string {
	if len(key) < 7 {
		return key
	}
	return key[:7]
}
