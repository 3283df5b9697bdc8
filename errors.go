package kollektiv

import "github.com/Skaland01/Kollektiv/types"

// Sentinel errors returned by the Engine.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = types.ErrInvalidConfig

	// ErrInvalidState is wrapped by every *InvalidStateError.
	ErrInvalidState = types.ErrInvalidState

	// ErrUnknownRoom is returned by Restore when a snapshot references a room
	// missing from the supplied catalog.
	ErrUnknownRoom = types.ErrUnknownRoom
)

// Sentinel errors returned by snapshot stores.
var (
	// ErrSnapshotNotFound is returned when no snapshot exists for a collective.
	ErrSnapshotNotFound = types.ErrSnapshotNotFound

	// ErrStaleSnapshot is returned when saving a snapshot older than the stored one.
	ErrStaleSnapshot = types.ErrStaleSnapshot

	// ErrStoreRequired is returned when a recorder is built without a store.
	ErrStoreRequired = types.ErrStoreRequired

	// ErrInvalidCollectiveID is returned for an empty collective id.
	ErrInvalidCollectiveID = types.ErrInvalidCollectiveID

	// ErrStoreUnavailable is returned when the store's server cannot be reached.
	ErrStoreUnavailable = types.ErrStoreUnavailable
)
