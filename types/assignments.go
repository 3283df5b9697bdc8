package types

import (
	"maps"
	"slices"
)

// Assignments maps each member to the ordered rooms assigned to them for one week.
//
// Invariant: every room of the distributed room set appears in exactly one
// member's bucket. Members present with an empty bucket are meaningful: they
// take part in rotation but hold no rooms this week.
type Assignments map[MemberID][]Room

// Rooms returns the bucket of the given member (nil if absent).
func (a Assignments) Rooms(id MemberID) []Room {
	return a[id]
}

// TotalRooms returns the number of rooms across all buckets.
func (a Assignments) TotalRooms() int {
	total := 0
	for _, rooms := range a {
		total += len(rooms)
	}

	return total
}

// MemberIDs returns the ledger's member ids sorted ascending.
func (a Assignments) MemberIDs() []MemberID {
	return slices.Sorted(maps.Keys(a))
}

// Clone returns a deep copy: buckets and the rooms in them (tasks included)
// can be mutated without touching the original.
func (a Assignments) Clone() Assignments {
	if a == nil {
		return nil
	}

	c := make(Assignments, len(a))
	for id, rooms := range a {
		if rooms == nil {
			c[id] = nil
			continue
		}

		bucket := make([]Room, len(rooms))
		for i, r := range rooms {
			bucket[i] = r.Clone()
		}
		c[id] = bucket
	}

	return c
}

// Contains reports whether the room is in the member's bucket.
func (a Assignments) Contains(member MemberID, room RoomID) bool {
	return slices.ContainsFunc(a[member], func(r Room) bool { return r.ID == room })
}

// RoomIDs returns the id-only encoding of the ledger ({memberId: [roomId, ...]}).
func (a Assignments) RoomIDs() map[MemberID][]RoomID {
	out := make(map[MemberID][]RoomID, len(a))
	for id, rooms := range a {
		ids := make([]RoomID, len(rooms))
		for i, r := range rooms {
			ids[i] = r.ID
		}
		out[id] = ids
	}

	return out
}

// DuplicateRoom returns the first room id found in more than one bucket.
//
// Buckets are scanned in sorted member order so the result is deterministic.
//
// Returns:
//   - RoomID: The duplicated room id ("" when none)
//   - bool: true when a duplicate exists
func (a Assignments) DuplicateRoom() (RoomID, bool) {
	seen := make(map[RoomID]struct{}, a.TotalRooms())
	for _, id := range a.MemberIDs() {
		for _, r := range a[id] {
			if _, ok := seen[r.ID]; ok {
				return r.ID, true
			}
			seen[r.ID] = struct{}{}
		}
	}

	return "", false
}
