package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Skaland01/Kollektiv/types"
)

// Redis stores snapshots as JSON strings under "<prefix>:<collectiveID>".
//
// The version check and the write run inside WATCH/MULTI, so a concurrent
// writer aborts the transaction rather than being overwritten.
type Redis struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

var _ types.SnapshotStore = (*Redis)(nil)

// RedisOption configures a Redis store.
type RedisOption func(*Redis)

// WithRedisTTL expires stored snapshots after ttl. Zero (the default) keeps them forever.
func WithRedisTTL(ttl time.Duration) RedisOption {
	return func(r *Redis) {
		r.ttl = ttl
	}
}

// NewRedis creates a Redis-backed store.
//
// Example:
//
//	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	st := store.NewRedis(client, "kollektiv")
func NewRedis(client redis.UniversalClient, prefix string, opts ...RedisOption) *Redis {
	r := &Redis{client: client, prefix: prefix}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	return r
}

func (r *Redis) key(collectiveID string) string {
	if r.prefix == "" {
		return collectiveID
	}

	return r.prefix + ":" + collectiveID
}

// Save stores the snapshot unless a newer version is already stored.
func (r *Redis) Save(ctx context.Context, collectiveID string, snap types.Snapshot) error {
	if collectiveID == "" {
		return types.ErrInvalidCollectiveID
	}

	data, err := snap.Marshal()
	if err != nil {
		return err
	}

	key := r.key(collectiveID)

	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
		case err != nil:
			return fmt.Errorf("failed to read snapshot %s: %w", key, err)
		default:
			stored, err := types.UnmarshalSnapshot(cur)
			if err != nil {
				return err
			}
			if stored.Version > snap.Version {
				return staleError(collectiveID, stored.Version, snap.Version)
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, r.ttl)
			return nil
		})

		return err
	}, key)
	if err != nil {
		if errors.Is(err, types.ErrStaleSnapshot) {
			return err
		}

		return fmt.Errorf("failed to save snapshot %s: %w", key, err)
	}

	return nil
}

// Load returns the stored snapshot, or types.ErrSnapshotNotFound.
func (r *Redis) Load(ctx context.Context, collectiveID string) (types.Snapshot, error) {
	key := r.key(collectiveID)

	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return types.Snapshot{}, notFoundError(collectiveID)
	}
	if err != nil {
		return types.Snapshot{}, fmt.Errorf("failed to read snapshot %s: %w", key, err)
	}

	return types.UnmarshalSnapshot(data)
}

// Delete removes the stored snapshot.
func (r *Redis) Delete(ctx context.Context, collectiveID string) error {
	if err := r.client.Del(ctx, r.key(collectiveID)).Err(); err != nil {
		return fmt.Errorf("failed to delete snapshot %s: %w", r.key(collectiveID), err)
	}

	return nil
}
