package store

import (
	"context"
	"sync"

	"github.com/Skaland01/Kollektiv/types"
)

// Memory is an in-process snapshot store.
//
// Snapshots are kept in encoded form so callers can never alias stored state.
type Memory struct {
	mu    sync.RWMutex
	items map[string][]byte
}

var _ types.SnapshotStore = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{items: make(map[string][]byte)}
}

// Save stores the snapshot unless a newer version is already stored.
func (m *Memory) Save(_ context.Context, collectiveID string, snap types.Snapshot) error {
	if collectiveID == "" {
		return types.ErrInvalidCollectiveID
	}

	data, err := snap.Marshal()
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if cur, ok := m.items[collectiveID]; ok {
		stored, err := types.UnmarshalSnapshot(cur)
		if err != nil {
			return err
		}
		if stored.Version > snap.Version {
			return staleError(collectiveID, stored.Version, snap.Version)
		}
	}

	m.items[collectiveID] = data

	return nil
}

// Load returns the stored snapshot, or types.ErrSnapshotNotFound.
func (m *Memory) Load(_ context.Context, collectiveID string) (types.Snapshot, error) {
	m.mu.RLock()
	data, ok := m.items[collectiveID]
	m.mu.RUnlock()

	if !ok {
		return types.Snapshot{}, notFoundError(collectiveID)
	}

	return types.UnmarshalSnapshot(data)
}

// Delete removes the stored snapshot.
func (m *Memory) Delete(_ context.Context, collectiveID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, collectiveID)

	return nil
}

// Len returns the number of stored collectives.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.items)
}
