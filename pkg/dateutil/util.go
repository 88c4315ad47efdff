package dateutil

import "time"

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the number of calendar days between two dates,
// ignoring the time of day. The order of arguments does not matter.
func DaysBetween(a, b time.Time) int {
	diff := truncateToDay(a).Sub(truncateToDay(b))
	if diff < 0 {
		diff = -diff
	}

	return int(diff / (24 * time.Hour))
}

// DaysBetweenInclusive counts both endpoint days, so a one-day event spanning
// a single date yields 1.
func DaysBetweenInclusive(a, b time.Time) int {
	return DaysBetween(a, b) + 1
}

// WithinWindow reports whether t falls on or between the first and last
// allowed dates, compared at day granularity.
func WithinWindow(t, first, last time.Time) bool {
	day := truncateToDay(t)
	return !day.Before(truncateToDay(first)) && !day.After(truncateToDay(last))
}

// EventDay returns the 1-based day of the event that t falls on, given the
// first allowed entry date.
func EventDay(t, first time.Time) int {
	return DaysBetween(t, first) + 1
}
