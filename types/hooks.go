package types

import "context"

// Hooks defines callbacks for engine mutation events.
//
// All hooks are optional. They run synchronously after the mutation that
// triggered them, one event at a time and in mutation order, so a hook that
// persists snapshots never overwrites a newer one with an older one. Hooks may
// call the engine's read methods but must not mutate the engine.
//
// Hook errors are logged and passed to OnError; they never fail the engine
// operation that triggered them.
//
// Example:
//
//	rec, _ := store.NewRecorder(store.NewMemory(), "flat-42", 5*time.Second, logger)
//	hooks := &kollektiv.Hooks{
//	    OnSnapshot: rec.Record,
//	    OnAssignmentsChanged: func(ctx context.Context, reason string, a kollektiv.Assignments) error {
//	        return notifyMembers(ctx, reason, a)
//	    },
//	}
type Hooks struct {
	// OnAssignmentsChanged is called when the live Assignment Ledger changes.
	// reason is "distribute", "rotate", "schedule" or "restore".
	OnAssignmentsChanged func(ctx context.Context, reason string, assignments Assignments) error

	// OnScheduleGenerated is called after GenerateSchedule wrote its entries.
	OnScheduleGenerated func(ctx context.Context, entries []WeekEntry) error

	// OnSnapshot is called with a fresh snapshot after every mutation.
	OnSnapshot func(ctx context.Context, snapshot Snapshot) error

	// OnError is called when another hook fails.
	OnError func(ctx context.Context, err error) error
}

// Reasons passed to Hooks.OnAssignmentsChanged.
const (
	ReasonDistribute = "distribute"
	ReasonRotate     = "rotate"
	ReasonSchedule   = "schedule"
	ReasonRestore    = "restore"
)
