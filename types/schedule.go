package types

import (
	"fmt"
	"time"
)

// WeekKey identifies an ISO-8601 week.
//
// The ISO year is kept next to the week number so keys stay unique across
// year boundaries (week 1 of 2027 follows week 53 of 2026).
type WeekKey struct {
	Year int `json:"year" yaml:"year"`
	Week int `json:"week" yaml:"week"`
}

// String formats the key as "2026-W42".
func (k WeekKey) String() string {
	return fmt.Sprintf("%04d-W%02d", k.Year, k.Week)
}

// Compare orders keys chronologically.
//
// Returns:
//   - int: -1 if k < o, 0 if equal, +1 if k > o
func (k WeekKey) Compare(o WeekKey) int {
	switch {
	case k.Year < o.Year:
		return -1
	case k.Year > o.Year:
		return 1
	case k.Week < o.Week:
		return -1
	case k.Week > o.Week:
		return 1
	default:
		return 0
	}
}

// WeekEntry is the immutable schedule record of one week.
type WeekEntry struct {
	// Key is the ISO week of the entry.
	Key WeekKey `json:"key"`

	// Start is Monday 00:00 of the week.
	Start time.Time `json:"start"`

	// End is Sunday 00:00 of the week, six calendar days after Start.
	End time.Time `json:"end"`

	// Assignments is the ledger for the week.
	Assignments Assignments `json:"-"`
}

// TotalRooms returns the number of rooms assigned in the week.
func (e WeekEntry) TotalRooms() int {
	return e.Assignments.TotalRooms()
}

// UpcomingWeek is one result row of an upcoming-assignments lookup.
type UpcomingWeek struct {
	Key   WeekKey
	Start time.Time
	End   time.Time
	Rooms []Room
}
