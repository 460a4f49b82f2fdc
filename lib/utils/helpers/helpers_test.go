package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	require.Nil(t, ParseDate("", time.UTC))
	require.Nil(t, ParseDate("01.02.2024", time.UTC))
	d := ParseDate("2024-02-01", time.UTC)
	require.NotNil(t, d)
	require.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), *d)
}

func TestStartOfWeek(t *testing.T) {
	// 2024-01-07 is a Sunday
	sunday := time.Date(2024, 1, 7, 15, 30, 0, 0, time.UTC)
	require.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), StartOfWeek(sunday))
	monday := time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)
	require.Equal(t, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), StartOfWeek(monday))
}

func TestEndOfDay(t *testing.T) {
	d := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	end := EndOfDay(d)
	require.Equal(t, 10, end.Day())
	require.Equal(t, 23, end.Hour())
	require.True(t, end.Add(time.Nanosecond).Equal(time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)))
}

func TestRound1(t *testing.T) {
	require.Equal(t, 33.3, Round1(100.0/3))
	require.Equal(t, 66.7, Round1(200.0/3))
	require.Equal(t, 0.0, Round1(0))
}

func TestPercentage(t *testing.T) {
	require.Equal(t, 0.0, Percentage(5, 0))
	require.Equal(t, 0.0, Percentage(0, 7))
	require.Equal(t, 33.3, Percentage(1, 3))
	require.Equal(t, 100.0, Percentage(4, 4))
	require.Equal(t, 14.3, Percentage(1, 7))
}

func TestUTCDate(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	require.Equal(t, time.Date(2026, 3, 19, 0, 0, 0, 0, time.UTC), UTCDate(time.Date(2026, 3, 20, 0, 0, 0, 0, tokyo)))
	require.Equal(t, time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC), UTCDate(time.Date(2026, 3, 20, 23, 59, 0, 0, time.UTC)))
}
