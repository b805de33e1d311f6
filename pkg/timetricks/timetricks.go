package timetricks

import (
	"fmt"
	"time"
)

const (
	dayFormat   = "20060102"
	isoFormat   = "2006-01-02"
	dotFormat   = "2006.01.02"
	clockFormat = "15:04"
)

// SameDay reports whether t and t2 fall on the same calendar day, each in its
// own location.
func SameDay(t time.Time, t2 time.Time) bool {
	return t.Format(dayFormat) == t2.Format(dayFormat)
}

// TrimClock returns midnight at the start of t's calendar day.
func TrimClock(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Today is midnight today in loc.
func Today(loc *time.Location) time.Time {
	return TrimClock(time.Now().In(loc))
}

// ParseDay reads a YYYY-MM-DD date as midnight in loc.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(isoFormat, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q not in fmt %q: %w", s, isoFormat, err)
	}
	return t, nil
}

// ISODay formats t's calendar day as YYYY-MM-DD.
func ISODay(t time.Time) string {
	return t.Format(isoFormat)
}

// DotDay formats t's calendar day as YYYY.MM.DD.
func DotDay(t time.Time) string {
	return t.Format(dotFormat)
}

// Clock formats t's wall clock as 24-hour HH:MM.
func Clock(t time.Time) string {
	return t.Format(clockFormat)
}
