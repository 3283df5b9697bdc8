package types

// LoadTracker is the Historical Load Ledger as seen by strategies.
//
// Strategies read it to bias fairness and add each member's received room
// count after every run. Entries are created lazily: an unknown member has
// load 0.
type LoadTracker interface {
	// Load returns the cumulative room count of the member.
	Load(id MemberID) int

	// Add increments the member's cumulative room count by n.
	Add(id MemberID, n int)
}

// Distributor computes a week's assignment from scratch.
//
// Implementations:
//   - Fairness: Biased toward members with lower historical load (default)
//   - RoundRobin: Plain modulo distribution, ignores history
//
// Distributor implementations should:
//   - Be deterministic (same input and loads → same output)
//   - Assign every room exactly once
//   - Return an empty mapping without side effects for empty rooms or members
//   - Add each member's bucket size to loads on completion
type Distributor interface {
	// Distribute assigns rooms to members.
	//
	// Parameters:
	//   - rooms: Rooms to assign (read-only)
	//   - members: Participating members (read-only)
	//   - loads: Historical load ledger, updated as a side effect
	//
	// Returns:
	//   - Assignments: Member id → rooms, including empty buckets
	Distribute(rooms []Room, members []Member, loads LoadTracker) Assignments
}

// Rotator produces the next week's assignment from the current one.
type Rotator interface {
	// Rotate hands whole buckets to the neighbouring member and rebalances.
	//
	// Parameters:
	//   - current: The current week's ledger (read-only)
	//   - members: Participating members; must match the ledger's member set
	//   - loads: Historical load ledger, updated as a side effect
	//
	// Returns:
	//   - Assignments: Next week's ledger
	//   - error: *InvalidStateError when membership disagrees with current
	Rotate(current Assignments, members []Member, loads LoadTracker) (Assignments, error)
}
