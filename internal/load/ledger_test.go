package load

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Skaland01/Kollektiv/types"
)

func TestLedger_LazyEntries(t *testing.T) {
	l := NewLedger()

	require.Equal(t, 0, l.Load("m1"))
	require.Equal(t, 0, l.Len(), "reading must not create entries")

	l.Add("m1", 2)
	l.Add("m1", 3)
	l.Add("m2", 0)

	require.Equal(t, 5, l.Load("m1"))
	require.Equal(t, 0, l.Load("m2"))
	require.Equal(t, 2, l.Len())
	require.Equal(t, []types.MemberID{"m1", "m2"}, l.Members())
}

func TestLedger_SetAndReset(t *testing.T) {
	l := NewLedger()
	l.Set("m1", 7)
	l.Set("m2", 3)

	require.Equal(t, map[types.MemberID]int{"m1": 7, "m2": 3}, l.Snapshot())

	l.Reset()
	require.Equal(t, 0, l.Len())
	require.Empty(t, l.Snapshot())
	require.Equal(t, 0, l.Load("m1"))
}

func TestLedger_Spread(t *testing.T) {
	l := NewLedger()
	l.Set("m1", 10)
	l.Set("m2", 4)

	require.Equal(t, 0, l.Spread(nil))
	require.Equal(t, 6, l.Spread([]types.MemberID{"m1", "m2"}))
	require.Equal(t, 10, l.Spread([]types.MemberID{"m1", "m2", "m3"}), "unknown members count as zero")
}

func TestLedger_ConcurrentReadsDuringSerializedWrites(t *testing.T) {
	l := NewLedger()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range 1000 {
			l.Add("m1", 1)
		}
	}()

	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 1000 {
				_ = l.Load("m1")
				_ = l.Snapshot()
			}
		}()
	}

	wg.Wait()
	require.Equal(t, 1000, l.Load("m1"))
}

func TestLedger_Clone(t *testing.T) {
	l := NewLedger()
	l.Set("m1", 4)
	l.Set("m2", 1)

	c := l.Clone()
	c.Add("m1", 2)
	c.Add("m3", 1)

	require.Equal(t, map[types.MemberID]int{"m1": 4, "m2": 1}, l.Snapshot())
	require.Equal(t, map[types.MemberID]int{"m1": 6, "m2": 1, "m3": 1}, c.Snapshot())
}
