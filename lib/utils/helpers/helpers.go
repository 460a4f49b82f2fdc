package helpers

import (
	"context"
	"math"
	"time"
)

func IsContextDone(ctx context.Context) bool {
	if ctx == nil {
		return true
	}
	select {
	case <-ctx.Done():
		return true
	default:
	}
	return false
}

const DateLayout = "2006-01-02"

// ParseDate parses YYYY-MM-DD in loc, nil for empty or malformed input
func ParseDate(value string, loc *time.Location) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.ParseInLocation(DateLayout, value, loc)
	if err != nil {
		return nil
	}
	return &t
}

func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// UTCDate is the calendar date of t in UTC at midnight. Deadlines are stored this way.
func UTCDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns the Monday of the week containing t
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func Round1(value float64) float64 {
	return math.Round(value*10) / 10
}

// Percentage is part of whole in percent with one decimal, 0 when whole is 0
func Percentage(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return Round1(float64(part) / float64(whole) * 100)
}
