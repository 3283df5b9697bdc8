package testutil

import (
	"slices"
	"testing"

	"github.com/Skaland01/Kollektiv/types"
)

// AssertConservation verifies that every input room appears in exactly one
// bucket and that no other room was introduced.
//
// Parameters:
//   - t: testing handle
//   - rooms: the room set that was distributed
//   - assignments: member id → assigned rooms
func AssertConservation(t testing.TB, rooms []types.Room, assignments types.Assignments) {
	t.Helper()

	want := make(map[types.RoomID]struct{}, len(rooms))
	for _, r := range rooms {
		want[r.ID] = struct{}{}
	}

	seen := make(map[types.RoomID]types.MemberID, len(rooms))
	for member, bucket := range assignments {
		for _, r := range bucket {
			if prev, ok := seen[r.ID]; ok {
				t.Fatalf("room %s assigned to both %s and %s", r.ID, prev, member)
			}
			if _, ok := want[r.ID]; !ok {
				t.Fatalf("room %s assigned to %s was not part of the input", r.ID, member)
			}
			seen[r.ID] = member
		}
	}

	if len(seen) != len(want) {
		t.Fatalf("assigned room count (%d) does not equal input room count (%d)", len(seen), len(want))
	}
}

// BucketSizes returns the bucket sizes sorted descending.
func BucketSizes(assignments types.Assignments) []int {
	sizes := make([]int, 0, len(assignments))
	for _, bucket := range assignments {
		sizes = append(sizes, len(bucket))
	}
	slices.Sort(sizes)
	slices.Reverse(sizes)

	return sizes
}

// RoomIDs returns the ids of rooms in bucket order.
func RoomIDs(rooms []types.Room) []types.RoomID {
	ids := make([]types.RoomID, len(rooms))
	for i, r := range rooms {
		ids[i] = r.ID
	}

	return ids
}
