package strategy

import (
	"slices"

	"github.com/Skaland01/Kollektiv/internal/logger"
	"github.com/Skaland01/Kollektiv/types"
)

const (
	// DefaultTolerance is the band around the average bucket size inside which
	// a member is neither overloaded nor underloaded.
	DefaultTolerance = 0.5

	// minTolerance keeps every transfer strictly reducing imbalance: with a
	// band narrower than ±0.5 a room could bounce between two buckets forever.
	minTolerance = 0.5
)

// Rotator implements whole-bucket circular rotation with a rebalancing pass.
type Rotator struct {
	tolerance float64
	logger    types.Logger
}

var _ types.Rotator = (*Rotator)(nil)

// RotatorOption configures a Rotator.
type RotatorOption func(*Rotator)

// RotationResult carries the outcome of a rotation.
type RotationResult struct {
	// Assignments is the next week's ledger.
	Assignments types.Assignments

	// Moves is the number of single-room transfers made by the rebalancing pass.
	Moves int
}

// NewRotator creates a new rotator.
//
// Parameters:
//   - opts: Optional configuration (WithTolerance, WithRotatorLogger)
//
// Returns:
//   - *Rotator: Initialized rotator
func NewRotator(opts ...RotatorOption) *Rotator {
	r := &Rotator{
		tolerance: DefaultTolerance,
		logger:    logger.NewNop(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	if r.tolerance < minTolerance {
		r.logger.Warn("rebalance tolerance below minimum, clamping",
			"tolerance", r.tolerance,
			"minimum", minTolerance)
		r.tolerance = minTolerance
	}

	return r
}

// WithTolerance sets the over/underload band around the average bucket size.
//
// Values below 0.5 are clamped to 0.5.
func WithTolerance(tolerance float64) RotatorOption {
	return func(r *Rotator) {
		r.tolerance = tolerance
	}
}

// WithRotatorLogger sets the logger used for warnings and debug diagnostics.
func WithRotatorLogger(l types.Logger) RotatorOption {
	return func(r *Rotator) {
		if l != nil {
			r.logger = l
		}
	}
}

// Tolerance returns the effective rebalance tolerance.
func (r *Rotator) Tolerance() float64 {
	return r.tolerance
}

// Rotate produces the next week's ledger.
//
// See RotateWithResult for the algorithm.
func (r *Rotator) Rotate(current types.Assignments, members []types.Member, loads types.LoadTracker) (types.Assignments, error) {
	res, err := r.RotateWithResult(current, members, loads)
	if err != nil {
		return nil, err
	}

	return res.Assignments, nil
}

// RotateWithResult produces the next week's ledger and reports rebalancing moves.
//
// The algorithm:
//  1. Verify the member set equals the ledger's member set and no room is held twice
//  2. Order members by id; member i receives the old bucket of member (i+1) mod N
//  3. Rebalance: members above average+tolerance are overloaded, below
//     average-tolerance underloaded; pair both lists positionally and move the
//     last room of each overloaded bucket to its partner. Unpaired members are
//     skipped; passes repeat until no pair remains
//  4. Add each member's new bucket size to the load ledger
//
// Nothing is mutated when verification fails.
//
// Parameters:
//   - current: The current week's ledger (read-only)
//   - members: Participating members
//   - loads: Historical load ledger, updated on success
//
// Returns:
//   - RotationResult: Next ledger and number of rebalancing moves
//   - error: *types.InvalidStateError on membership mismatch or duplicated rooms
func (r *Rotator) RotateWithResult(current types.Assignments, members []types.Member, loads types.LoadTracker) (RotationResult, error) {
	if len(current) == 0 {
		return RotationResult{Assignments: types.Assignments{}}, nil
	}

	ids, err := verifyMembership(current, members)
	if err != nil {
		return RotationResult{}, err
	}

	next := make(types.Assignments, len(ids))
	for i, id := range ids {
		next[id] = slices.Clone(current[ids[(i+1)%len(ids)]])
		if next[id] == nil {
			next[id] = []types.Room{}
		}
	}

	moves := r.rebalance(next, ids)
	recordLoads(loads, next)

	r.logger.Debug("assignments rotated",
		"members", len(ids),
		"rooms", next.TotalRooms(),
		"moves", moves)

	return RotationResult{Assignments: next, Moves: moves}, nil
}

// rebalance moves single rooms from overloaded to underloaded buckets.
func (r *Rotator) rebalance(buckets types.Assignments, ids []types.MemberID) int {
	average := float64(buckets.TotalRooms()) / float64(len(ids))
	moves := 0

	for {
		var over, under []types.MemberID
		for _, id := range ids {
			size := float64(len(buckets[id]))
			switch {
			case size > average+r.tolerance:
				over = append(over, id)
			case size < average-r.tolerance:
				under = append(under, id)
			}
		}

		pairs := min(len(over), len(under))
		if pairs == 0 {
			return moves
		}

		for k := range pairs {
			from, to := over[k], under[k]
			bucket := buckets[from]
			room := bucket[len(bucket)-1]
			buckets[from] = bucket[:len(bucket)-1]
			buckets[to] = append(buckets[to], room)
			moves++
		}
	}
}

// verifyMembership checks that members and the ledger describe the same
// member set and that no room is held twice.
//
// Returns the member ids sorted ascending, which fixes the rotation direction.
func verifyMembership(current types.Assignments, members []types.Member) ([]types.MemberID, error) {
	ids := types.MemberIDs(uniqueMembers(members))
	slices.Sort(ids)

	given := make(map[types.MemberID]struct{}, len(ids))
	for _, id := range ids {
		given[id] = struct{}{}
		if _, ok := current[id]; !ok {
			return nil, types.NewInvalidStateError("rotate",
				"member %q is not part of the current ledger (membership changed since distribution)", id)
		}
	}

	for _, id := range current.MemberIDs() {
		if _, ok := given[id]; !ok {
			return nil, types.NewInvalidStateError("rotate",
				"ledger member %q is missing from the member list (membership changed since distribution)", id)
		}
	}

	if room, dup := current.DuplicateRoom(); dup {
		return nil, types.NewInvalidStateError("rotate", "room %q is assigned more than once", room)
	}

	return ids, nil
}
