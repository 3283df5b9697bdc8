package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for the Kollektiv engine.
//
// Components return these (possibly wrapped with fmt.Errorf("%s: %w", msg, err))
// so callers can match them with errors.Is() and errors.As().

// Engine errors - Public API errors returned by the Engine.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidState is returned when a ledger disagrees with the inputs it is combined with,
	// for example rotating with a member set that differs from the one the ledger was built for.
	ErrInvalidState = errors.New("invalid engine state")

	// ErrUnknownRoom is returned when a snapshot references a room the caller did not supply.
	ErrUnknownRoom = errors.New("unknown room")
)

// Store errors - Snapshot persistence errors.
var (
	// ErrSnapshotNotFound is returned when no snapshot exists for a collective.
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrStaleSnapshot is returned when saving a snapshot older than the stored one.
	ErrStaleSnapshot = errors.New("stale snapshot")

	// ErrStoreRequired is returned when a recorder is created without a store.
	ErrStoreRequired = errors.New("snapshot store is required")

	// ErrInvalidCollectiveID is returned when a collective id is empty.
	ErrInvalidCollectiveID = errors.New("invalid collective ID")

	// ErrStoreUnavailable is returned when the store's server cannot be reached.
	ErrStoreUnavailable = errors.New("snapshot store unavailable")
)

// InvalidStateError describes a precondition violation detected before any
// ledger was mutated.
type InvalidStateError struct {
	// Op is the operation that detected the violation ("rotate", "restore").
	Op string

	// Reason is a human readable description of the mismatch.
	Reason string
}

// Error implements the error interface.
func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidState.Error(), e.Op, e.Reason)
}

// Unwrap allows errors.Is(err, ErrInvalidState).
func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// NewInvalidStateError builds an InvalidStateError with a formatted reason.
func NewInvalidStateError(op, format string, args ...any) *InvalidStateError {
	return &InvalidStateError{Op: op, Reason: fmt.Sprintf(format, args...)}
}
