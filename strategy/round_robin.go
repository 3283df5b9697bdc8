package strategy

import "github.com/Skaland01/Kollektiv/types"

// RoundRobin implements simple round-robin room distribution.
type RoundRobin struct{}

var _ types.Distributor = (*RoundRobin)(nil)

// NewRoundRobin creates a new round-robin distributor.
//
// The distributor hands room i to member i mod N in input order. It ignores
// historical load when choosing, but still records the received rooms so the
// ledger stays truthful if the engine later switches to Fairness.
//
// Returns:
//   - *RoundRobin: Initialized round-robin distributor
//
// Example:
//
//	engine, _ := kollektiv.NewEngine(&cfg, kollektiv.WithDistributor(strategy.NewRoundRobin()))
func NewRoundRobin() *RoundRobin {
	return &RoundRobin{}
}

// Distribute calculates assignments using round-robin distribution.
//
// Parameters:
//   - rooms: Rooms to assign
//   - members: Participating members (duplicate ids are ignored)
//   - loads: Historical load ledger, updated on completion
//
// Returns:
//   - types.Assignments: Member id → rooms; empty mapping for empty input
func (rr *RoundRobin) Distribute(rooms []types.Room, members []types.Member, loads types.LoadTracker) types.Assignments {
	members = uniqueMembers(members)
	if len(rooms) == 0 || len(members) == 0 {
		return types.Assignments{}
	}

	out := emptyBuckets(members)
	for i, room := range rooms {
		id := members[i%len(members)].ID
		out[id] = append(out[id], room)
	}

	recordLoads(loads, out)

	return out
}
