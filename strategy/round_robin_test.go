package strategy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Skaland01/Kollektiv/internal/load"
	"github.com/Skaland01/Kollektiv/test/testutil"
	"github.com/Skaland01/Kollektiv/types"
)

func TestRoundRobin_Distribute(t *testing.T) {
	t.Run("distributes rooms evenly across members", func(t *testing.T) {
		rooms := testutil.Rooms(9)
		assignments := NewRoundRobin().Distribute(rooms, testutil.Members(3), load.NewLedger())

		testutil.AssertConservation(t, rooms, assignments)
		require.Len(t, assignments, 3)
		require.Len(t, assignments["m1"], 3)
		require.Len(t, assignments["m2"], 3)
		require.Len(t, assignments["m3"], 3)
	})

	t.Run("handles uneven distribution", func(t *testing.T) {
		rooms := testutil.Rooms(5)
		assignments := NewRoundRobin().Distribute(rooms, testutil.Members(2), load.NewLedger())

		require.Len(t, assignments["m1"], 3)
		require.Len(t, assignments["m2"], 2)
		require.Equal(t, []types.RoomID{"room-00", "room-02", "room-04"}, testutil.RoomIDs(assignments["m1"]))
	})

	t.Run("ignores history but records it", func(t *testing.T) {
		ledger := load.NewLedger()
		ledger.Set("m1", 100)

		assignments := NewRoundRobin().Distribute(testutil.Rooms(3), testutil.Members(2), ledger)

		require.Len(t, assignments["m1"], 2)
		require.Equal(t, 102, ledger.Load("m1"))
		require.Equal(t, 1, ledger.Load("m2"))
	})

	t.Run("returns empty mapping when no members available", func(t *testing.T) {
		ledger := load.NewLedger()
		assignments := NewRoundRobin().Distribute(testutil.Rooms(2), nil, ledger)

		require.Empty(t, assignments)
		require.Equal(t, 0, ledger.Len())
	})
}
