package strategy

import "github.com/Skaland01/Kollektiv/types"

// uniqueMembers drops repeated member ids while preserving first-seen order.
func uniqueMembers(members []types.Member) []types.Member {
	seen := make(map[types.MemberID]struct{}, len(members))
	out := make([]types.Member, 0, len(members))
	for _, m := range members {
		if _, ok := seen[m.ID]; ok {
			continue
		}
		seen[m.ID] = struct{}{}
		out = append(out, m)
	}

	return out
}

// emptyBuckets initializes an empty bucket for every member.
func emptyBuckets(members []types.Member) types.Assignments {
	out := make(types.Assignments, len(members))
	for _, m := range members {
		out[m.ID] = []types.Room{}
	}

	return out
}

// recordLoads adds every member's bucket size to the load ledger.
func recordLoads(loads types.LoadTracker, assignments types.Assignments) {
	for id, rooms := range assignments {
		loads.Add(id, len(rooms))
	}
}
