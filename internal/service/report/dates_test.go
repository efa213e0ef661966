package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNormalizeDaySameDayInputs(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)

	want := time.Date(2024, time.January, 15, 0, 0, 0, 0, loc)

	inputs := []string{
		"2024-01-15",
		"2024-1-15",
		"2024-01-15T23:59:59Z",
		"2024-01-15T06:30:00+05:30",
		" 2024-01-15 ",
	}

	for _, input := range inputs {
		window, err := normalizeDay(input, loc)
		require.NoError(t, err, "input %q", input)
		require.True(t, window.Start.Equal(want), "input %q: got start %s", input, window.Start)
		require.True(t, window.End.Equal(want.AddDate(0, 0, 1)), "input %q: got end %s", input, window.End)
	}
}

func TestNormalizeDayMonthRollover(t *testing.T) {
	loc := time.UTC

	window, err := normalizeDay("2024-12-31", loc)
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, loc), window.End)

	window, err = normalizeDay("2024-02-29", loc)
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, loc), window.End)
}

func TestNormalizeDayInvalidFormat(t *testing.T) {
	loc := time.UTC

	for _, input := range []string{"", "   ", "not a date", "15/01/2024 garbage", "2024-01"} {
		_, err := normalizeDay(input, loc)
		require.ErrorIs(t, err, ErrInvalidDateFormat, "input %q", input)
	}
}

func TestNormalizeDayInvalidValue(t *testing.T) {
	loc := time.UTC

	for _, input := range []string{"2024-13-05", "2024-00-10", "2024-02-30", "2023-02-29", "0-01-01"} {
		_, err := normalizeDay(input, loc)
		require.ErrorIs(t, err, ErrInvalidDateValue, "input %q", input)
	}
}

func TestNormalizeDayWindowIsHalfOpen(t *testing.T) {
	loc := time.UTC

	window, err := normalizeDay("2024-01-15", loc)
	require.NoError(t, err)
	require.Equal(t, 24*time.Hour, window.End.Sub(window.Start))

	inside := window.Start.Add(23*time.Hour + 59*time.Minute)
	require.True(t, !inside.Before(window.Start) && inside.Before(window.End))
	require.False(t, window.End.Before(window.End))
}
