// Package kvutil provides helpers for the JetStream KeyValue bucket that
// holds engine snapshots.
package kvutil

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/Skaland01/Kollektiv/internal/natsutil"
)

// Defaults for SnapshotBucket fields left at their zero value.
const (
	DefaultBucketName = "kollektiv-snapshots"
	DefaultHistory    = 5
	DefaultAttempts   = 3
)

// retryBase is the first backoff step; it doubles per attempt.
const retryBase = 10 * time.Millisecond

// SnapshotBucket describes the bucket snapshots are written to.
type SnapshotBucket struct {
	// Name is the bucket name. Default: DefaultBucketName.
	Name string

	// History is the number of revisions kept per collective key.
	// Default: DefaultHistory.
	History uint8

	// Attempts bounds how often a transient failure is retried.
	// Default: DefaultAttempts.
	Attempts int
}

// Config returns the JetStream configuration for the bucket with defaults
// applied.
func (b SnapshotBucket) Config() jetstream.KeyValueConfig {
	cfg := jetstream.KeyValueConfig{
		Bucket:      b.Name,
		Description: "Kollektiv engine snapshots",
		History:     b.History,
	}
	if cfg.Bucket == "" {
		cfg.Bucket = DefaultBucketName
	}
	if cfg.History == 0 {
		cfg.History = DefaultHistory
	}

	return cfg
}

// OpenSnapshotBucket opens the snapshot bucket, creating it on first use.
//
// Opening comes first since the bucket almost always exists after the first
// run. When two engines create it at once the loser opens the winner's
// bucket. Only connectivity failures are retried; a rejected configuration
// fails on the first attempt.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - js: JetStream context
//   - b: Bucket description
//
// Returns:
//   - jetstream.KeyValue: The bucket
//   - error: Last failure, or the context error
//
// Example:
//
//	kv, err := kvutil.OpenSnapshotBucket(ctx, js, kvutil.SnapshotBucket{Name: "kollektiv-snapshots"})
func OpenSnapshotBucket(ctx context.Context, js jetstream.JetStream, b SnapshotBucket) (jetstream.KeyValue, error) {
	cfg := b.Config()
	attempts := b.Attempts
	if attempts <= 0 {
		attempts = DefaultAttempts
	}

	var lastErr error
	for attempt := range attempts {
		kv, err := openOrCreate(ctx, js, cfg)
		if err == nil {
			return kv, nil
		}
		lastErr = err

		if !natsutil.IsConnectivityError(err) {
			break
		}

		if attempt < attempts-1 {
			backoff := retryBase << uint(attempt) //nolint:gosec // attempt is bounded by attempts
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("snapshot bucket %s: %w", cfg.Bucket, ctx.Err())
			case <-time.After(backoff):
			}
		}
	}

	return nil, fmt.Errorf("snapshot bucket %s: %w", cfg.Bucket, lastErr)
}

func openOrCreate(ctx context.Context, js jetstream.JetStream, cfg jetstream.KeyValueConfig) (jetstream.KeyValue, error) {
	kv, err := js.KeyValue(ctx, cfg.Bucket)
	if err == nil {
		return kv, nil
	}
	if !errors.Is(err, jetstream.ErrBucketNotFound) {
		return nil, err
	}

	kv, err = js.CreateKeyValue(ctx, cfg)
	if errors.Is(err, jetstream.ErrBucketExists) {
		return js.KeyValue(ctx, cfg.Bucket)
	}

	return kv, err
}
