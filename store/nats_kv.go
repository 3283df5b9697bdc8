package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/Skaland01/Kollektiv/internal/kvutil"
	"github.com/Skaland01/Kollektiv/types"
)

// NATSKV stores snapshots in a NATS JetStream KeyValue bucket under
// "<prefix>.<collectiveID>".
//
// Writes use the entry revision for optimistic concurrency: a concurrent
// writer between the version check and the update makes Save fail instead
// of silently overwriting.
type NATSKV struct {
	kv     jetstream.KeyValue
	prefix string
}

var _ types.SnapshotStore = (*NATSKV)(nil)

// NewNATSKV opens (creating if needed) the snapshot bucket.
//
// Parameters:
//   - ctx: Context for bucket creation
//   - js: JetStream context
//   - bucket: Bucket name (kvutil.DefaultBucketName when empty)
//   - prefix: Key prefix (may be empty)
//
// Returns:
//   - *NATSKV: Store bound to the bucket
//   - error: Bucket creation failure
//
// Example:
//
//	js, _ := jetstream.New(nc)
//	st, err := store.NewNATSKV(ctx, js, "kollektiv-snapshots", "collective")
func NewNATSKV(ctx context.Context, js jetstream.JetStream, bucket, prefix string) (*NATSKV, error) {
	kv, err := kvutil.OpenSnapshotBucket(ctx, js, kvutil.SnapshotBucket{Name: bucket})
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot bucket: %w", err)
	}

	return &NATSKV{kv: kv, prefix: prefix}, nil
}

// Save stores the snapshot unless a newer version is already stored.
func (s *NATSKV) Save(ctx context.Context, collectiveID string, snap types.Snapshot) error {
	if collectiveID == "" {
		return types.ErrInvalidCollectiveID
	}

	data, err := snap.Marshal()
	if err != nil {
		return err
	}

	key := kvutil.Key(s.prefix, collectiveID)

	entry, err := s.kv.Get(ctx, key)
	switch {
	case errors.Is(err, jetstream.ErrKeyNotFound):
		if _, err := s.kv.Create(ctx, key, data); err != nil {
			return natsError("create", key, err)
		}

		return nil
	case err != nil:
		return natsError("read", key, err)
	}

	stored, err := types.UnmarshalSnapshot(entry.Value())
	if err != nil {
		return err
	}
	if stored.Version > snap.Version {
		return staleError(collectiveID, stored.Version, snap.Version)
	}

	if _, err := s.kv.Update(ctx, key, data, entry.Revision()); err != nil {
		return natsError("update", key, err)
	}

	return nil
}

// Load returns the stored snapshot, or types.ErrSnapshotNotFound.
func (s *NATSKV) Load(ctx context.Context, collectiveID string) (types.Snapshot, error) {
	key := kvutil.Key(s.prefix, collectiveID)

	entry, err := s.kv.Get(ctx, key)
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		return types.Snapshot{}, notFoundError(collectiveID)
	}
	if err != nil {
		return types.Snapshot{}, natsError("read", key, err)
	}

	return types.UnmarshalSnapshot(entry.Value())
}

// Delete removes the stored snapshot.
func (s *NATSKV) Delete(ctx context.Context, collectiveID string) error {
	key := kvutil.Key(s.prefix, collectiveID)
	if err := s.kv.Delete(ctx, key); err != nil && !errors.Is(err, jetstream.ErrKeyNotFound) {
		return natsError("delete", key, err)
	}

	return nil
}
