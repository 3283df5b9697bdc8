package types

import "context"

// SnapshotStore persists engine snapshots per collective.
//
// Implementations:
//   - store.Memory: in-process map (tests, single-process apps)
//   - store.NATSKV: NATS JetStream KeyValue bucket
//   - store.Redis: Redis string keys
//   - store.SQL: a relational table via database/sql
//
// Save must reject a snapshot whose Version is lower than the stored one
// with ErrStaleSnapshot. Saving the same version again is allowed.
type SnapshotStore interface {
	// Save stores the snapshot for the collective.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//   - collectiveID: Collective the snapshot belongs to
	//   - snap: Snapshot to persist
	//
	// Returns:
	//   - error: ErrStaleSnapshot for older versions, wrapped backend errors otherwise
	Save(ctx context.Context, collectiveID string, snap Snapshot) error

	// Load returns the stored snapshot, or ErrSnapshotNotFound.
	Load(ctx context.Context, collectiveID string) (Snapshot, error)

	// Delete removes the stored snapshot. Deleting a missing snapshot is not an error.
	Delete(ctx context.Context, collectiveID string) error
}
