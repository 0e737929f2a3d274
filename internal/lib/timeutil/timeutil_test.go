package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		want  int
	}{
		{name: "february in a leap year", year: 2024, month: time.February, want: 29},
		{name: "february in a common year", year: 2023, month: time.February, want: 28},
		{name: "february in a century year", year: 1900, month: time.February, want: 28},
		{name: "february in a 400-year", year: 2000, month: time.February, want: 29},
		{name: "december", year: 2024, month: time.December, want: 31},
		{name: "april", year: 2024, month: time.April, want: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysInMonth(tt.year, tt.month))
		})
	}
}

func TestIsLastDayOfMonth(t *testing.T) {
	assert.True(t, IsLastDayOfMonth(time.Date(2024, 2, 29, 10, 0, 0, 0, time.UTC)))
	assert.False(t, IsLastDayOfMonth(time.Date(2024, 2, 28, 10, 0, 0, 0, time.UTC)))
	assert.True(t, IsLastDayOfMonth(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)))
	assert.False(t, IsLastDayOfMonth(time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)))
}

func TestNextLastDay(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		want time.Time
	}{
		{
			name: "mid february of a leap year",
			from: time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC),
			want: time.Date(2024, 2, 29, 23, 0, 0, 0, time.UTC),
		},
		{
			name: "mid february of a common year",
			from: time.Date(2023, 2, 15, 0, 0, 0, 0, time.UTC),
			want: time.Date(2023, 2, 28, 23, 0, 0, 0, time.UTC),
		},
		{
			name: "already past this month's target",
			from: time.Date(2024, 1, 31, 23, 30, 0, 0, time.UTC),
			want: time.Date(2024, 2, 29, 23, 0, 0, 0, time.UTC),
		},
		{
			name: "december wraps into january",
			from: time.Date(2024, 12, 31, 23, 30, 0, 0, time.UTC),
			want: time.Date(2025, 1, 31, 23, 0, 0, 0, time.UTC),
		},
		{
			name: "exactly at the target stays on it",
			from: time.Date(2024, 3, 31, 23, 0, 0, 0, time.UTC),
			want: time.Date(2024, 3, 31, 23, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextLastDay(tt.from, 23, 0))
		})
	}
}

func TestParseClock(t *testing.T) {
	hour, minute, err := ParseClock("23:00")
	require.NoError(t, err)
	assert.Equal(t, 23, hour)
	assert.Equal(t, 0, minute)

	hour, minute, err = ParseClock("7:45")
	require.NoError(t, err)
	assert.Equal(t, 7, hour)
	assert.Equal(t, 45, minute)

	_, _, err = ParseClock("24:00")
	require.Error(t, err)

	_, _, err = ParseClock("not-a-time")
	require.Error(t, err)

	_, _, err = ParseClock("23:00junk")
	require.Error(t, err)

	_, _, err = ParseClock("-1:30")
	require.Error(t, err)

	_, _, err = ParseClock("10:61")
	require.Error(t, err)
}
