package types

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// RoomID is the opaque, immutable identity of a room.
type RoomID string

// NewRoomID returns a fresh random room identity.
func NewRoomID() RoomID {
	return RoomID(uuid.NewString())
}

// RoomCategory classifies a room and selects its default task checklist.
type RoomCategory string

// Room categories.
const (
	CategoryKitchen    RoomCategory = "kitchen"
	CategoryBathroom   RoomCategory = "bathroom"
	CategoryLivingRoom RoomCategory = "living-room"
	CategoryCustom     RoomCategory = "custom"
)

// Valid reports whether c is one of the known categories.
func (c RoomCategory) Valid() bool {
	switch c {
	case CategoryKitchen, CategoryBathroom, CategoryLivingRoom, CategoryCustom:
		return true
	default:
		return false
	}
}

// Cadence is how often a room is expected to be cleaned.
type Cadence string

// Cleaning cadences.
const (
	CadenceWeekly   Cadence = "weekly"
	CadenceBiweekly Cadence = "biweekly"
	CadenceMonthly  Cadence = "monthly"
)

// Days returns the cadence length in days (weekly=7, biweekly=14, monthly=30).
//
// Unknown cadences fall back to weekly.
func (c Cadence) Days() int {
	switch c {
	case CadenceBiweekly:
		return 14
	case CadenceMonthly:
		return 30
	default:
		return 7
	}
}

// Valid reports whether c is one of the known cadences.
func (c Cadence) Valid() bool {
	switch c {
	case CadenceWeekly, CadenceBiweekly, CadenceMonthly:
		return true
	default:
		return false
	}
}

// Room represents a cleanable space shared by the collective.
//
// The engine only reads ID. Everything else belongs to the caller and is
// carried through assignments untouched.
type Room struct {
	// ID uniquely identifies the room for its whole lifetime.
	ID RoomID `json:"id" yaml:"id"`

	// Name is the display name ("Kitchen", "Upstairs bathroom").
	Name string `json:"name" yaml:"name"`

	// Description is free text.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Category selects the default task checklist.
	Category RoomCategory `json:"category" yaml:"category"`

	// Tasks is the ordered checklist for a cleaning of this room.
	Tasks []Task `json:"tasks,omitempty" yaml:"tasks,omitempty"`

	// Cadence is the expected cleaning interval.
	Cadence Cadence `json:"cadence" yaml:"cadence"`

	// LastCleaned is when the room was last marked cleaned (nil if never).
	LastCleaned *time.Time `json:"lastCleaned,omitempty" yaml:"lastCleaned,omitempty"`

	// LastCleanedBy is the member who last marked the room cleaned.
	LastCleanedBy MemberID `json:"lastCleanedBy,omitempty" yaml:"lastCleanedBy,omitempty"`
}

// NewRoom creates a weekly room with a fresh ID and the default checklist for its category.
//
// Parameters:
//   - name: Display name of the room
//   - category: Room category (selects default tasks)
//
// Returns:
//   - Room: Initialized room
//
// Example:
//
//	kitchen := types.NewRoom("Kitchen", types.CategoryKitchen)
func NewRoom(name string, category RoomCategory) Room {
	return Room{
		ID:       NewRoomID(),
		Name:     name,
		Category: category,
		Tasks:    DefaultTasks(category),
		Cadence:  CadenceWeekly,
	}
}

// CompleteTask marks the task with the given id as completed at the given time.
//
// Returns false when the room has no such task.
func (r *Room) CompleteTask(id TaskID, at time.Time) bool {
	for i := range r.Tasks {
		if r.Tasks[i].ID != id {
			continue
		}
		r.Tasks[i].Completed = true
		completedAt := at
		r.Tasks[i].LastCompleted = &completedAt

		return true
	}

	return false
}

// AllTasksCompleted reports whether every task on the checklist is done.
//
// A room without tasks is never considered complete.
func (r *Room) AllTasksCompleted() bool {
	if len(r.Tasks) == 0 {
		return false
	}

	for _, t := range r.Tasks {
		if !t.Completed {
			return false
		}
	}

	return true
}

// MarkCleaned records a cleaning and resets the checklist for the next round.
func (r *Room) MarkCleaned(by MemberID, at time.Time) {
	cleanedAt := at
	r.LastCleaned = &cleanedAt
	r.LastCleanedBy = by

	for i := range r.Tasks {
		r.Tasks[i].Completed = false
	}
}

// NextDue returns when the room should be cleaned next.
//
// Returns the zero time when the room has never been cleaned.
func (r *Room) NextDue() time.Time {
	if r.LastCleaned == nil {
		return time.Time{}
	}

	return r.LastCleaned.AddDate(0, 0, r.Cadence.Days())
}

// IsDue reports whether the room needs cleaning at now.
func (r *Room) IsDue(now time.Time) bool {
	if r.LastCleaned == nil {
		return true
	}

	return !now.Before(r.NextDue())
}

// Clone returns a deep copy of the room.
func (r Room) Clone() Room {
	c := r
	c.Tasks = slices.Clone(r.Tasks)
	if r.LastCleaned != nil {
		lc := *r.LastCleaned
		c.LastCleaned = &lc
	}

	return c
}
