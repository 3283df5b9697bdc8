package strategy

import (
	"cmp"
	"slices"

	"github.com/Skaland01/Kollektiv/internal/logger"
	"github.com/Skaland01/Kollektiv/types"
)

// Fairness implements history-biased round-robin distribution.
type Fairness struct {
	logger types.Logger
}

var _ types.Distributor = (*Fairness)(nil)

// FairnessOption configures a Fairness distributor.
type FairnessOption func(*Fairness)

// NewFairness creates a new fairness distributor.
//
// Parameters:
//   - opts: Optional configuration (WithFairnessLogger)
//
// Returns:
//   - *Fairness: Initialized fairness distributor
//
// Example:
//
//	dist := strategy.NewFairness()
//	engine, _ := kollektiv.NewEngine(&cfg, kollektiv.WithDistributor(dist))
func NewFairness(opts ...FairnessOption) *Fairness {
	f := &Fairness{logger: logger.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}

	return f
}

// WithFairnessLogger sets the logger used for debug diagnostics.
func WithFairnessLogger(l types.Logger) FairnessOption {
	return func(f *Fairness) {
		if l != nil {
			f.logger = l
		}
	}
}

// Distribute assigns every room to exactly one member, favouring members with
// lower historical load.
//
// The algorithm:
//  1. Give every member an empty bucket and compute average = rooms/members (real-valued)
//  2. Stable-sort members ascending by historical load (ties keep input order)
//  3. Walk the sorted members round-robin; a member takes the next room when its
//     bucket is below average OR its historical load is below the maximum load
//  4. Stop when no rooms remain, then add each bucket size to the load ledger
//
// Each full pass assigns at least one room: if every member had a full bucket
// and maximal load, the buckets would already hold all rooms.
//
// Parameters:
//   - rooms: Rooms to assign (read-only)
//   - members: Participating members (read-only, duplicate ids are ignored)
//   - loads: Historical load ledger, updated on completion
//
// Returns:
//   - types.Assignments: Member id → rooms; empty mapping for empty input
func (f *Fairness) Distribute(rooms []types.Room, members []types.Member, loads types.LoadTracker) types.Assignments {
	members = uniqueMembers(members)
	if len(rooms) == 0 || len(members) == 0 {
		return types.Assignments{}
	}

	out := emptyBuckets(members)
	average := float64(len(rooms)) / float64(len(members))

	order := slices.Clone(members)
	slices.SortStableFunc(order, func(a, b types.Member) int {
		return cmp.Compare(loads.Load(a.ID), loads.Load(b.ID))
	})

	maxLoad := 0
	for _, m := range order {
		maxLoad = max(maxLoad, loads.Load(m.ID))
	}

	next := 0
	for next < len(rooms) {
		for _, m := range order {
			if next == len(rooms) {
				break
			}

			bucket := out[m.ID]
			if float64(len(bucket)) < average || loads.Load(m.ID) < maxLoad {
				out[m.ID] = append(bucket, rooms[next])
				next++
			}
		}
	}

	recordLoads(loads, out)

	f.logger.Debug("rooms distributed",
		"rooms", len(rooms),
		"members", len(members),
		"average", average,
		"max_load", maxLoad)

	return out
}
