// Package calendar implements the Monday-start ISO-8601 week convention used
// by the schedule: weeks begin on Monday and week 1 is the week containing
// the year's first Thursday (minimum four days in the first week).
package calendar

import (
	"time"

	"github.com/Skaland01/Kollektiv/types"
)

// KeyOf returns the ISO week containing t.
func KeyOf(t time.Time) types.WeekKey {
	year, week := t.ISOWeek()
	return types.WeekKey{Year: year, Week: week}
}

// StartOfWeek returns Monday 00:00 of the week containing t, in t's location.
func StartOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7 // Monday=0 … Sunday=6
	y, m, d := t.Date()

	return time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location())
}

// Bounds returns the start (Monday 00:00) and end (Sunday 00:00) of the week containing t.
//
// End is exactly six calendar days after start, also across DST changes.
func Bounds(t time.Time) (start, end time.Time) {
	start = StartOfWeek(t)
	end = start.AddDate(0, 0, 6)

	return start, end
}

// AddWeeks moves t forward by n calendar weeks.
func AddWeeks(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, 7*n)
}

// Week describes one ISO week.
type Week struct {
	Key   types.WeekKey
	Start time.Time
	End   time.Time
}

// Sequence returns n consecutive weeks, beginning with the week containing from.
//
// Returns nil for n <= 0.
func Sequence(from time.Time, n int) []Week {
	if n <= 0 {
		return nil
	}

	first := StartOfWeek(from)
	weeks := make([]Week, n)
	for i := range n {
		start := AddWeeks(first, i)
		weeks[i] = Week{
			Key:   KeyOf(start),
			Start: start,
			End:   start.AddDate(0, 0, 6),
		}
	}

	return weeks
}
