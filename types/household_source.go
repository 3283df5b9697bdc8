package types

import "context"

// HouseholdSource provides the rooms and members of a collective.
//
// The engine never owns rooms or members; callers read them from a source
// (static list, file, database) and pass them into each engine call.
type HouseholdSource interface {
	// ListRooms returns all rooms of the collective in a stable order.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//
	// Returns:
	//   - []Room: Rooms of the collective
	//   - error: Discovery error (nil on success)
	ListRooms(ctx context.Context) ([]Room, error)

	// ListMembers returns all participating members in a stable order.
	ListMembers(ctx context.Context) ([]Member, error)
}
