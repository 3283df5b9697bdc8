package source

import (
	"context"
	"sync"

	"github.com/Skaland01/Kollektiv/types"
)

// Static implements a household source with fixed rooms and members.
type Static struct {
	mu      sync.RWMutex
	rooms   []types.Room
	members []types.Member
}

var _ types.HouseholdSource = (*Static)(nil)

// NewStatic creates a new static household source.
//
// Parameters:
//   - rooms: Rooms of the collective, in the order distribution should see them
//   - members: Participating members
//
// Returns:
//   - *Static: Initialized static source
//
// Example:
//
//	src := source.NewStatic(
//	    []types.Room{types.NewRoom("Kitchen", types.CategoryKitchen)},
//	    []types.Member{{ID: "ola", Name: "Ola"}, {ID: "kari", Name: "Kari"}},
//	)
//	rooms, _ := src.ListRooms(ctx)
//	members, _ := src.ListMembers(ctx)
//	engine.Distribute(ctx, rooms, members)
func NewStatic(rooms []types.Room, members []types.Member) *Static {
	s := &Static{}
	s.Update(rooms, members)

	return s
}

// ListRooms returns a copy of the rooms.
func (s *Static) ListRooms(_ context.Context) ([]types.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Room, len(s.rooms))
	for i, r := range s.rooms {
		out[i] = r.Clone()
	}

	return out, nil
}

// ListMembers returns a copy of the members.
func (s *Static) ListMembers(_ context.Context) ([]types.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Member, len(s.members))
	copy(out, s.members)

	return out, nil
}

// Update replaces rooms and members, e.g. after a member moved out.
func (s *Static) Update(rooms []types.Room, members []types.Member) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rooms = make([]types.Room, len(rooms))
	for i, r := range rooms {
		s.rooms[i] = r.Clone()
	}

	s.members = make([]types.Member, len(members))
	copy(s.members, members)
}
