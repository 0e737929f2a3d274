// Package timeutil contains the calendar arithmetic for the monthly
// backup schedule: finding the last day of a month and the next
// "last day of month at HH:MM" occurrence.
package timeutil

import (
	"fmt"
	"time"
)

// DaysInMonth returns the number of days in the given month. Day zero of
// the following month normalizes to the last day of this one, which
// handles leap years without spelling the Gregorian rule out.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IsLastDayOfMonth reports whether t falls on the last calendar day of
// its month.
func IsLastDayOfMonth(t time.Time) bool {
	return t.AddDate(0, 0, 1).Month() != t.Month()
}

// NextLastDay returns the next occurrence of "last day of the month at
// hour:minute" at or after from. If from is already past this month's
// target the following month's last day is returned, wrapping December
// into January of the next year.
func NextLastDay(from time.Time, hour, minute int) time.Time {
	year, month := from.Year(), from.Month()

	lastDay := DaysInMonth(year, month)
	target := time.Date(year, month, lastDay, hour, minute, 0, 0, from.Location())

	if from.After(target) {
		if month == time.December {
			year++
			month = time.January
		} else {
			month++
		}
		lastDay = DaysInMonth(year, month)
		target = time.Date(year, month, lastDay, hour, minute, 0, 0, from.Location())
	}
	return target
}

// ParseClock parses a wall-clock time in the "HH:MM" format. The whole
// string must match; trailing characters are rejected.
func ParseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return t.Hour(), t.Minute(), nil
}
