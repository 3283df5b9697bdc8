package types

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/zeebo/xxh3"
)

// Snapshot is the serializable view of an engine's ledgers.
//
// Rooms are encoded by id only; restoring resolves them against the caller's
// room catalog, which stays the source of truth for room details.
//
// JSON structure:
//
//	{
//	  "collectiveId": "flat-42",
//	  "version": 7,
//	  "assignments": {"m1": ["r1", "r2"], "m2": ["r3"]},
//	  "schedule": [{"key": {"year": 2026, "week": 42}, "start": "...", "end": "...", "assignments": {...}}],
//	  "load": {"m1": 14, "m2": 13}
//	}
type Snapshot struct {
	// CollectiveID identifies the collective the ledgers belong to.
	CollectiveID string `json:"collectiveId"`

	// Version increases by one with every mutation of the engine.
	Version int64 `json:"version"`

	// TakenAt is when the snapshot was captured.
	TakenAt time.Time `json:"takenAt"`

	// Assignments is the live Assignment Ledger.
	Assignments map[MemberID][]RoomID `json:"assignments"`

	// Schedule holds the weekly entries sorted by week.
	Schedule []ScheduleRecord `json:"schedule,omitempty"`

	// Load is the Historical Load Ledger.
	Load map[MemberID]int `json:"load"`
}

// ScheduleRecord is the id-only encoding of a WeekEntry.
type ScheduleRecord struct {
	Key         WeekKey               `json:"key"`
	Start       time.Time             `json:"start"`
	End         time.Time             `json:"end"`
	Assignments map[MemberID][]RoomID `json:"assignments"`
}

// snapshotContent is the subset of a snapshot that contributes to its checksum.
type snapshotContent struct {
	Assignments map[MemberID][]RoomID `json:"assignments"`
	Schedule    []ScheduleRecord      `json:"schedule,omitempty"`
	Load        map[MemberID]int      `json:"load"`
}

// Checksum returns an xxh3 digest of the ledger content.
//
// Version, TakenAt and CollectiveID are excluded, so two snapshots with the
// same ledgers hash identically. encoding/json sorts map keys, which keeps
// the digest stable across runs.
//
// Returns:
//   - uint64: Content digest (0 if the content cannot be encoded)
func (s Snapshot) Checksum() uint64 {
	data, err := json.Marshal(snapshotContent{
		Assignments: s.Assignments,
		Schedule:    s.Schedule,
		Load:        s.Load,
	})
	if err != nil {
		return 0
	}

	return xxh3.Hash(data)
}

// Marshal encodes the snapshot as JSON.
func (s Snapshot) Marshal() ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	return data, nil
}

// UnmarshalSnapshot decodes a JSON snapshot.
func UnmarshalSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return s, nil
}
