package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 30, 0, 0, time.UTC)
}

func TestDaysBetween(t *testing.T) {
	require.Equal(t, 0, DaysBetween(date(2024, 3, 10, 9), date(2024, 3, 10, 23)))
	require.Equal(t, 1, DaysBetween(date(2024, 3, 10, 23), date(2024, 3, 11, 0)))
	require.Equal(t, 2, DaysBetween(date(2024, 3, 12, 1), date(2024, 3, 10, 22)))

	// Argument order does not matter.
	require.Equal(t, 2, DaysBetween(date(2024, 3, 10, 22), date(2024, 3, 12, 1)))
}

func TestDaysBetweenInclusive(t *testing.T) {
	require.Equal(t, 1, DaysBetweenInclusive(date(2024, 3, 10, 9), date(2024, 3, 10, 12)))
	require.Equal(t, 3, DaysBetweenInclusive(date(2024, 3, 10, 9), date(2024, 3, 12, 12)))
}

func TestWithinWindow(t *testing.T) {
	first := date(2024, 3, 10, 10)
	last := date(2024, 3, 12, 10)

	require.False(t, WithinWindow(date(2024, 3, 9, 23), first, last))
	require.True(t, WithinWindow(date(2024, 3, 10, 0), first, last))
	require.True(t, WithinWindow(date(2024, 3, 11, 15), first, last))
	require.True(t, WithinWindow(date(2024, 3, 12, 23), first, last))
	require.False(t, WithinWindow(date(2024, 3, 13, 0), first, last))
}

func TestEventDay(t *testing.T) {
	first := date(2024, 3, 10, 10)
	require.Equal(t, 1, EventDay(date(2024, 3, 10, 8), first))
	require.Equal(t, 3, EventDay(date(2024, 3, 12, 23), first))
}
