package store

import (
	"fmt"

	"github.com/Skaland01/Kollektiv/internal/natsutil"
	"github.com/Skaland01/Kollektiv/types"
)

func staleError(collectiveID string, stored, given int64) error {
	return fmt.Errorf("%w: collective %s has version %d, got %d",
		types.ErrStaleSnapshot, collectiveID, stored, given)
}

func notFoundError(collectiveID string) error {
	return fmt.Errorf("%w: collective %s", types.ErrSnapshotNotFound, collectiveID)
}

// natsError wraps a JetStream failure, marking connectivity problems with
// types.ErrStoreUnavailable.
func natsError(op, key string, err error) error {
	if natsutil.IsConnectivityError(err) {
		return fmt.Errorf("%w: failed to %s snapshot %s: %w", types.ErrStoreUnavailable, op, key, err)
	}

	return fmt.Errorf("failed to %s snapshot %s: %w", op, key, err)
}
