package strategy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Skaland01/Kollektiv/internal/load"
	"github.com/Skaland01/Kollektiv/test/testutil"
	"github.com/Skaland01/Kollektiv/types"
)

func distributors() map[string]types.Distributor {
	return map[string]types.Distributor{
		"Fairness":   NewFairness(),
		"RoundRobin": NewRoundRobin(),
	}
}

// TestDistributor_SingleMember_GetsAllRooms verifies single member scenarios.
func TestDistributor_SingleMember_GetsAllRooms(t *testing.T) {
	for name, dist := range distributors() {
		t.Run(name, func(t *testing.T) {
			rooms := testutil.Rooms(3)
			assignments := dist.Distribute(rooms, testutil.Members(1), load.NewLedger())

			require.Len(t, assignments, 1)
			require.Len(t, assignments["m1"], 3, "single member should get all rooms")
		})
	}
}

// TestDistributor_MoreMembersThanRooms verifies that some members may get nothing.
func TestDistributor_MoreMembersThanRooms(t *testing.T) {
	for name, dist := range distributors() {
		t.Run(name, func(t *testing.T) {
			rooms := testutil.Rooms(2)
			assignments := dist.Distribute(rooms, testutil.Members(5), load.NewLedger())

			testutil.AssertConservation(t, rooms, assignments)
			require.Equal(t, []int{1, 1, 0, 0, 0}, testutil.BucketSizes(assignments))
		})
	}
}

// TestDistributeThenRotate_SpreadStaysBounded repeatedly distributes and
// rotates a fixed household with at least as many rooms as members and checks
// the historical load spread never exceeds the room count.
//
// Rotation hands whole buckets to the next member without looking at load, so
// the bound is not universal: with 2 rooms, 5 members and 3 rotations per
// distribution the spread keeps growing. The two tests below pin the cadences
// where it does hold for any room count.
func TestDistributeThenRotate_SpreadStaysBounded(t *testing.T) {
	cases := []struct {
		rooms, members, rotations int
	}{
		{6, 3, 5},
		{7, 3, 4},
		{5, 4, 7},
		{8, 3, 2},
		{9, 4, 3},
		{11, 4, 9},
	}

	for _, tc := range cases {
		rooms := testutil.Rooms(tc.rooms)
		members := testutil.Members(tc.members)
		ids := types.MemberIDs(members)
		ledger := load.NewLedger()
		dist := NewFairness()
		rot := NewRotator()

		for range 40 {
			current := dist.Distribute(rooms, members, ledger)
			testutil.AssertConservation(t, rooms, current)

			for range tc.rotations {
				next, err := rot.Rotate(current, members, ledger)
				require.NoError(t, err)
				testutil.AssertConservation(t, rooms, next)
				current = next
			}

			require.LessOrEqual(t, ledger.Spread(ids), tc.rooms,
				"spread grew beyond room count for %d rooms / %d members", tc.rooms, tc.members)
		}
	}
}

// TestDistributeThenRotate_FullCycles_SpreadStaysBounded covers households
// where every distribution is followed by whole rotation cycles, i.e. each
// bucket visits every member the same number of times before the next
// distribution. Fewer rooms than members is included.
func TestDistributeThenRotate_FullCycles_SpreadStaysBounded(t *testing.T) {
	cases := []struct {
		rooms, members, cycles int
	}{
		{1, 3, 1},
		{1, 5, 2},
		{2, 4, 1},
		{2, 5, 1},
		{3, 7, 2},
		{4, 9, 1},
		{5, 2, 3},
		{7, 5, 1},
		{9, 6, 2},
	}

	for _, tc := range cases {
		rooms := testutil.Rooms(tc.rooms)
		members := testutil.Members(tc.members)
		ids := types.MemberIDs(members)
		ledger := load.NewLedger()
		dist := NewFairness()
		rot := NewRotator()
		rotations := tc.cycles*tc.members - 1

		for range 30 {
			current := dist.Distribute(rooms, members, ledger)
			for range rotations {
				next, err := rot.Rotate(current, members, ledger)
				require.NoError(t, err)
				current = next
			}

			require.LessOrEqual(t, ledger.Spread(ids), tc.rooms,
				"spread grew beyond room count for %d rooms / %d members / %d cycles",
				tc.rooms, tc.members, tc.cycles)
		}
	}
}

// TestSingleDistribution_RotationsKeepSpreadBounded follows the schedule
// generator's pattern: one distribution, then a long run of rotations. The
// spread is checked after every rotation.
func TestSingleDistribution_RotationsKeepSpreadBounded(t *testing.T) {
	cases := []struct {
		rooms, members int
	}{
		{1, 3},
		{2, 5},
		{3, 8},
		{4, 9},
		{7, 5},
		{9, 6},
		{11, 4},
	}

	for _, tc := range cases {
		rooms := testutil.Rooms(tc.rooms)
		members := testutil.Members(tc.members)
		ids := types.MemberIDs(members)
		ledger := load.NewLedger()
		rot := NewRotator()

		current := NewFairness().Distribute(rooms, members, ledger)
		require.LessOrEqual(t, ledger.Spread(ids), tc.rooms)

		for week := range 150 {
			next, err := rot.Rotate(current, members, ledger)
			require.NoError(t, err)
			testutil.AssertConservation(t, rooms, next)
			current = next

			require.LessOrEqual(t, ledger.Spread(ids), tc.rooms,
				"spread grew beyond room count for %d rooms / %d members after %d rotations",
				tc.rooms, tc.members, week+1)
		}
	}
}
