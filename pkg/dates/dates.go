// Package dates handles the calendar-date values that cross the form engine
// boundary. Every date is a plain YYYY-MM-DD string; parsing constructs the
// value from explicit year/month/day components at local midnight so a
// timezone shift can never move a stored date onto the previous or next day.
package dates

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Layout is the wire format for date-only values.
const Layout = "2006-01-02"

// ErrInvalidDate is returned for strings that are not valid YYYY-MM-DD
// calendar dates.
var ErrInvalidDate = errors.New("dates: invalid calendar date")

// Parse converts a YYYY-MM-DD string into a local-midnight time. It rejects
// anything that is not exactly four digits, dash, two digits, dash, two
// digits, including calendar overflows such as 2024-02-31.
func Parse(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) != 10 || trimmed[4] != '-' || trimmed[7] != '-' {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}

	year, err := strconv.Atoi(trimmed[:4])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	month, err := strconv.Atoi(trimmed[5:7])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	day, err := strconv.Atoi(trimmed[8:])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}

	parsed := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	// time.Date normalises overflows (Feb 31 becomes Mar 2); a round trip
	// through the components catches that.
	if parsed.Year() != year || parsed.Month() != time.Month(month) || parsed.Day() != day {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return parsed, nil
}

// Format renders a time as a YYYY-MM-DD string. Format(Parse(s)) == s for
// every valid s.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Valid reports whether raw parses as a calendar date.
func Valid(raw string) bool {
	_, err := Parse(raw)
	return err == nil
}

// Today returns the current date at local midnight.
func Today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
}
