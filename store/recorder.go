package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Skaland01/Kollektiv/internal/logger"
	"github.com/Skaland01/Kollektiv/types"
)

// DefaultTimeout bounds a single store operation issued by a Recorder.
const DefaultTimeout = 5 * time.Second

// Recorder persists engine snapshots through a SnapshotStore.
//
// It is meant to be installed as the engine's OnSnapshot hook. Snapshots
// whose content checksum equals the last saved one are skipped, so read-only
// churn (e.g. distributing an empty room list) costs no store round trip.
type Recorder struct {
	store        types.SnapshotStore
	collectiveID string
	timeout      time.Duration
	logger       types.Logger

	mu           sync.Mutex
	saved        bool
	lastChecksum uint64
	lastVersion  int64
	saves        int
	skips        int
}

// NewRecorder creates a recorder for one collective.
//
// Parameters:
//   - st: Snapshot store (required)
//   - collectiveID: Collective the snapshots belong to (required)
//   - timeout: Per-operation timeout (DefaultTimeout when <= 0)
//   - l: Logger (nop when nil)
//
// Returns:
//   - *Recorder: Ready recorder
//   - error: ErrStoreRequired or ErrInvalidCollectiveID
func NewRecorder(st types.SnapshotStore, collectiveID string, timeout time.Duration, l types.Logger) (*Recorder, error) {
	if st == nil {
		return nil, types.ErrStoreRequired
	}
	if collectiveID == "" {
		return nil, types.ErrInvalidCollectiveID
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if l == nil {
		l = logger.NewNop()
	}

	return &Recorder{store: st, collectiveID: collectiveID, timeout: timeout, logger: l}, nil
}

// Hooks returns engine hooks with OnSnapshot bound to Record.
func (r *Recorder) Hooks() *types.Hooks {
	return &types.Hooks{OnSnapshot: r.Record}
}

// Record saves the snapshot unless its content is unchanged since the last save.
//
// Returns:
//   - error: Store failure, including types.ErrStaleSnapshot
func (r *Recorder) Record(ctx context.Context, snap types.Snapshot) error {
	sum := snap.Checksum()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.saved && sum == r.lastChecksum {
		r.skips++
		r.logger.Debug("snapshot unchanged, skipping save",
			"collective", r.collectiveID,
			"version", snap.Version)

		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.store.Save(ctx, r.collectiveID, snap); err != nil {
		if errors.Is(err, types.ErrStaleSnapshot) {
			r.logger.Warn("snapshot rejected as stale",
				"collective", r.collectiveID,
				"version", snap.Version,
				"last_saved_version", r.lastVersion)
		}

		return fmt.Errorf("failed to record snapshot v%d: %w", snap.Version, err)
	}

	r.saved = true
	r.lastChecksum = sum
	r.lastVersion = snap.Version
	r.saves++

	r.logger.Debug("snapshot saved",
		"collective", r.collectiveID,
		"version", snap.Version,
		"checksum", sum)

	return nil
}

// Load reads the collective's stored snapshot and primes the unchanged check
// with it, so restoring the snapshot into an engine does not write it back.
//
// Returns:
//   - types.Snapshot: Stored snapshot
//   - error: types.ErrSnapshotNotFound when nothing is stored
func (r *Recorder) Load(ctx context.Context) (types.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	snap, err := r.store.Load(ctx, r.collectiveID)
	if err != nil {
		return types.Snapshot{}, err
	}

	r.mu.Lock()
	r.saved = true
	r.lastChecksum = snap.Checksum()
	r.lastVersion = snap.Version
	r.mu.Unlock()

	return snap, nil
}

// Stats returns the number of saved and skipped snapshots.
func (r *Recorder) Stats() (saves, skips int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.saves, r.skips
}
