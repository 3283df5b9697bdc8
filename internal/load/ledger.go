// Package load implements the Historical Load Ledger.
//
// The ledger counts how many rooms each member has received across all
// distributions and rotations of one engine. It is the only signal the
// fairness distributor uses to bias new assignments.
package load

import (
	"maps"
	"slices"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/Skaland01/Kollektiv/types"
)

// Ledger is a member-id → cumulative room count map.
//
// Reads are lock-free and safe from any goroutine. Writes (Add, Set, Reset)
// must be serialized by the owner; the engine holds its writer lock for
// every mutation.
type Ledger struct {
	counts *xsync.Map[types.MemberID, int]
}

var _ types.LoadTracker = (*Ledger)(nil)

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{counts: xsync.NewMap[types.MemberID, int]()}
}

// Load returns the member's count, 0 for members never seen.
func (l *Ledger) Load(id types.MemberID) int {
	n, _ := l.counts.Load(id)
	return n
}

// Add increments the member's count, creating the entry on first use.
func (l *Ledger) Add(id types.MemberID, n int) {
	cur, _ := l.counts.Load(id)
	l.counts.Store(id, cur+n)
}

// Set overwrites the member's count.
func (l *Ledger) Set(id types.MemberID, n int) {
	l.counts.Store(id, n)
}

// Reset removes every entry.
func (l *Ledger) Reset() {
	l.counts.Range(func(id types.MemberID, _ int) bool {
		l.counts.Delete(id)
		return true
	})
}

// Clone returns an independent copy of the ledger.
func (l *Ledger) Clone() *Ledger {
	c := NewLedger()
	l.counts.Range(func(id types.MemberID, n int) bool {
		c.counts.Store(id, n)
		return true
	})

	return c
}

// Len returns the number of members with an entry.
func (l *Ledger) Len() int {
	return l.counts.Size()
}

// Snapshot returns a copy of all entries.
func (l *Ledger) Snapshot() map[types.MemberID]int {
	out := make(map[types.MemberID]int, l.counts.Size())
	l.counts.Range(func(id types.MemberID, n int) bool {
		out[id] = n
		return true
	})

	return out
}

// Spread returns max(load) - min(load) over the given members.
//
// Members without an entry count as 0. Returns 0 for an empty member list.
func (l *Ledger) Spread(ids []types.MemberID) int {
	if len(ids) == 0 {
		return 0
	}

	lo, hi := l.Load(ids[0]), l.Load(ids[0])
	for _, id := range ids[1:] {
		n := l.Load(id)
		lo = min(lo, n)
		hi = max(hi, n)
	}

	return hi - lo
}

// Members returns the ids with an entry, sorted ascending.
func (l *Ledger) Members() []types.MemberID {
	return slices.Sorted(maps.Keys(l.Snapshot()))
}
