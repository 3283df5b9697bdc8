package testutil

import (
	"fmt"
	"time"

	"github.com/Skaland01/Kollektiv/types"
)

// Rooms returns n rooms with ids "room-00", "room-01", ...
//
// Ids are deterministic so failures are easy to read.
func Rooms(n int) []types.Room {
	rooms := make([]types.Room, n)
	for i := range rooms {
		id := fmt.Sprintf("room-%02d", i)
		rooms[i] = types.Room{
			ID:       types.RoomID(id),
			Name:     id,
			Category: types.CategoryCustom,
			Cadence:  types.CadenceWeekly,
		}
	}

	return rooms
}

// NamedRooms returns rooms whose ids and names are the given labels.
func NamedRooms(labels ...string) []types.Room {
	rooms := make([]types.Room, len(labels))
	for i, l := range labels {
		rooms[i] = types.Room{ID: types.RoomID(l), Name: l, Category: types.CategoryCustom, Cadence: types.CadenceWeekly}
	}

	return rooms
}

// Members returns n members with ids "m1", "m2", ...
func Members(n int) []types.Member {
	members := make([]types.Member, n)
	for i := range members {
		id := fmt.Sprintf("m%d", i+1)
		members[i] = types.Member{ID: types.MemberID(id), Name: id, Role: types.RoleMember}
	}

	return members
}

// FixedClock returns a clock function that always reports t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// Wednesday is a fixed mid-week instant (2026-W42) used by schedule tests.
var Wednesday = time.Date(2026, 10, 14, 10, 30, 0, 0, time.UTC)
