package kollektiv

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/Skaland01/Kollektiv/internal/calendar"
	"github.com/Skaland01/Kollektiv/internal/hooks"
	"github.com/Skaland01/Kollektiv/internal/load"
	"github.com/Skaland01/Kollektiv/internal/logger"
	"github.com/Skaland01/Kollektiv/internal/metrics"
	"github.com/Skaland01/Kollektiv/strategy"
	"github.com/Skaland01/Kollektiv/types"
)

// Engine distributes, rotates and schedules rooms for one collective.
//
// Engine owns three ledgers:
//   - the Assignment Ledger (member → rooms for the current week)
//   - the Weekly Schedule (ISO week → assignments)
//   - the Historical Load Ledger (member → rooms assigned so far)
//
// Rooms and members belong to the caller and are passed into each call.
//
// Thread Safety:
//   - All public methods are safe for concurrent use
//   - Mutations are serialized behind one writer lock; lookups share a read lock
//   - Hooks observe mutations one at a time, in mutation order
//
// The engine performs no I/O. Persist state by attaching a store.Recorder
// through WithHooks, or by calling Snapshot.
type Engine struct {
	cfg Config
	loc *time.Location

	// Optional dependencies
	distributor Distributor
	rotator     Rotator
	hooks       *Hooks
	metrics     MetricsCollector
	logger      Logger
	now         func() time.Time

	// State management
	mu          sync.RWMutex
	assignments Assignments
	schedule    map[WeekKey]WeekEntry
	loads       *load.Ledger
	version     int64

	// Hook dispatch order. nextTicket is taken under mu; serving advances
	// under dispatchMu once a mutation's hooks have run.
	dispatchMu   sync.Mutex
	dispatchCond *sync.Cond
	nextTicket   uint64
	serving      uint64
}

// mutation describes what a locked write changed, for hook dispatch.
type mutation struct {
	ticket      uint64
	reason      string
	assignments Assignments
	entries     []WeekEntry
	snapshot    *Snapshot
}

// NewEngine creates a new Engine for one collective.
//
// Returns a concrete *Engine following the "accept interfaces, return structs" principle.
//
// Parameters:
//   - cfg: Engine configuration (defaults are applied in place)
//   - opts: Optional configuration (distributor, rotator, hooks, metrics, logger, clock)
//
// Returns:
//   - *Engine: Initialized engine with empty ledgers
//   - error: Validation error if configuration is invalid
//
// Example:
//
//	cfg := kollektiv.DefaultConfig()
//	cfg.CollectiveID = "flat-42"
//	eng, err := kollektiv.NewEngine(&cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	week, _ := eng.GenerateSchedule(ctx, rooms, members, 4)
func NewEngine(cfg *Config, opts ...Option) (*Engine, error) {
	if cfg == nil {
		return nil, ErrInvalidConfig
	}

	SetDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	options := &engineOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}

	if options.logger == nil {
		options.logger = logger.NewNop()
	}
	if options.metrics == nil {
		options.metrics = metrics.NewNop()
	}
	if options.clock == nil {
		options.clock = time.Now
	}
	if options.distributor == nil {
		options.distributor = strategy.NewFairness(strategy.WithFairnessLogger(options.logger))
	}
	if options.rotator == nil {
		options.rotator = strategy.NewRotator(
			strategy.WithTolerance(cfg.RebalanceTolerance),
			strategy.WithRotatorLogger(options.logger),
		)
	}

	cfg.ValidateWithWarnings(options.logger)

	e := &Engine{
		cfg:         *cfg,
		loc:         cfg.Location(),
		distributor: options.distributor,
		rotator:     options.rotator,
		hooks:       hooks.Fill(options.hooks),
		metrics:     options.metrics,
		logger:      options.logger,
		now:         options.clock,
		assignments: Assignments{},
		schedule:    make(map[WeekKey]WeekEntry),
		loads:       load.NewLedger(),
	}
	e.dispatchCond = sync.NewCond(&e.dispatchMu)

	return e, nil
}

// CollectiveID returns the collective this engine serves.
func (e *Engine) CollectiveID() string {
	return e.cfg.CollectiveID
}

// Version returns the state version, incremented by every mutation.
func (e *Engine) Version() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.version
}

// Distribute assigns rooms to members from scratch, biased by historical load.
//
// The result replaces the Assignment Ledger and each member's bucket size is
// added to the Historical Load Ledger. Empty rooms or members return an empty
// mapping and leave the engine untouched.
//
// Parameters:
//   - ctx: Context passed to hooks
//   - rooms: Rooms to assign
//   - members: Participating members
//
// Returns:
//   - Assignments: Member id → rooms (a copy owned by the caller)
func (e *Engine) Distribute(ctx context.Context, rooms []Room, members []Member) Assignments {
	if len(rooms) == 0 || len(members) == 0 {
		return Assignments{}
	}

	start := time.Now()

	e.mu.Lock()
	result := e.distributor.Distribute(rooms, members, e.loads)
	e.assignments = result.Clone()
	e.version++
	m := mutation{reason: ReasonDistribute, assignments: result.Clone()}
	e.observeLoadsLocked()
	e.snapshotForHooksLocked(&m)
	e.metrics.RecordDistribution(len(rooms), len(members), time.Since(start).Seconds())

	e.logger.Info("rooms distributed",
		"collectiveID", e.cfg.CollectiveID,
		"rooms", len(rooms),
		"members", len(m.assignments),
		"version", e.version)

	e.dispatchAndUnlock(ctx, m)

	return result
}

// Rotate advances the Assignment Ledger by one week.
//
// Each member (ordered by id) takes over the bucket of the next member, then
// a rebalancing pass evens out bucket sizes. An empty ledger rotates to an
// empty ledger without error.
//
// Parameters:
//   - ctx: Context passed to hooks
//   - members: Participating members; must match the ledger's member set
//
// Returns:
//   - Assignments: The new ledger (a copy owned by the caller)
//   - error: *InvalidStateError when membership changed or a room is held twice
func (e *Engine) Rotate(ctx context.Context, members []Member) (Assignments, error) {
	start := time.Now()

	e.mu.Lock()
	if len(e.assignments) == 0 {
		e.mu.Unlock()
		return Assignments{}, nil
	}

	next, moves, err := e.rotate(e.assignments, members, e.loads)
	if err != nil {
		e.metrics.RecordRotation(0, false, time.Since(start).Seconds())
		e.mu.Unlock()

		e.logger.Warn("rotation rejected",
			"collectiveID", e.cfg.CollectiveID,
			"error", err)

		return nil, fmt.Errorf("rotate: %w", err)
	}

	e.assignments = next.Clone()
	e.version++
	m := mutation{reason: ReasonRotate, assignments: next.Clone()}
	e.observeLoadsLocked()
	e.snapshotForHooksLocked(&m)
	e.metrics.RecordRotation(moves, true, time.Since(start).Seconds())

	e.logger.Info("assignments rotated",
		"collectiveID", e.cfg.CollectiveID,
		"moves", moves,
		"version", e.version)

	e.dispatchAndUnlock(ctx, m)

	return next, nil
}

// GenerateSchedule pre-computes weeks of assignments starting at the current week.
//
// Week one is a fresh distribution, every following week rotates the previous
// one. Each entry overwrites the schedule at its week key, the Assignment
// Ledger becomes week one, and the Historical Load Ledger accumulates every
// generated week. The whole run is computed on a scratch copy and committed
// at once, so a failure leaves the engine untouched.
//
// Parameters:
//   - ctx: Context passed to hooks
//   - rooms: Rooms to schedule
//   - members: Participating members
//   - weeks: Number of weeks to generate
//
// Returns:
//   - []WeekEntry: One entry per week in chronological order; empty when
//     rooms or members are empty or weeks <= 0
//   - error: Rotation failure from a custom distributor/rotator pair
//
// Example:
//
//	entries, err := eng.GenerateSchedule(ctx, rooms, members, 4)
//	for _, e := range entries {
//	    fmt.Println(e.Key, e.Start.Format("Jan 2"), "-", e.End.Format("Jan 2"))
//	}
func (e *Engine) GenerateSchedule(ctx context.Context, rooms []Room, members []Member, weeks int) ([]WeekEntry, error) {
	if len(rooms) == 0 || len(members) == 0 || weeks <= 0 {
		return []WeekEntry{}, nil
	}

	start := time.Now()

	e.mu.Lock()
	scratch := e.loads.Clone()
	calWeeks := calendar.Sequence(e.now().In(e.loc), weeks)
	entries := make([]WeekEntry, 0, weeks)
	totalMoves := 0

	current := e.distributor.Distribute(rooms, members, scratch)
	for i, w := range calWeeks {
		if i > 0 {
			next, moves, err := e.rotate(current, members, scratch)
			if err != nil {
				e.mu.Unlock()

				e.logger.Error("schedule generation failed",
					"collectiveID", e.cfg.CollectiveID,
					"week", w.Key.String(),
					"error", err)

				return nil, fmt.Errorf("generate schedule: week %s: %w", w.Key, err)
			}
			current = next
			totalMoves += moves
		}

		entries = append(entries, WeekEntry{
			Key:         w.Key,
			Start:       w.Start,
			End:         w.End,
			Assignments: current,
		})
	}

	for _, entry := range entries {
		stored := entry
		stored.Assignments = entry.Assignments.Clone()
		e.schedule[entry.Key] = stored
	}
	e.assignments = entries[0].Assignments.Clone()
	e.loads = scratch
	e.version++

	m := mutation{
		reason:      ReasonSchedule,
		assignments: entries[0].Assignments.Clone(),
		entries:     cloneEntries(entries),
	}
	e.observeLoadsLocked()
	e.snapshotForHooksLocked(&m)
	e.metrics.RecordScheduleGenerated(weeks, time.Since(start).Seconds())

	e.logger.Info("schedule generated",
		"collectiveID", e.cfg.CollectiveID,
		"from", entries[0].Key.String(),
		"weeks", weeks,
		"moves", totalMoves,
		"version", e.version)

	e.dispatchAndUnlock(ctx, m)

	return entries, nil
}

// ResetHistory clears the Historical Load Ledger.
//
// The Assignment Ledger and the Weekly Schedule are kept.
func (e *Engine) ResetHistory(ctx context.Context) {
	e.mu.Lock()
	e.loads.Reset()
	e.version++
	m := mutation{}
	e.observeLoadsLocked()
	e.snapshotForHooksLocked(&m)

	e.logger.Info("load history reset",
		"collectiveID", e.cfg.CollectiveID,
		"version", e.version)

	e.dispatchAndUnlock(ctx, m)
}

// Restore replaces all three ledgers with the state captured in snap.
//
// Room ids are resolved against rooms, so the restored ledgers carry the
// caller's current room details. Restore does not emit OnSnapshot: the state
// came from a snapshot already.
//
// Parameters:
//   - ctx: Context passed to hooks
//   - snap: Snapshot to restore (from Snapshot or a SnapshotStore)
//   - rooms: Room catalog used to resolve room ids
//
// Returns:
//   - error: ErrUnknownRoom for unresolvable ids, *InvalidStateError for a
//     foreign collective or a room held twice; the engine is untouched on error
func (e *Engine) Restore(ctx context.Context, snap Snapshot, rooms []Room) error {
	if snap.CollectiveID != "" && snap.CollectiveID != e.cfg.CollectiveID {
		return types.NewInvalidStateError("restore",
			"snapshot belongs to collective %q, engine serves %q", snap.CollectiveID, e.cfg.CollectiveID)
	}

	catalog := make(map[RoomID]Room, len(rooms))
	for _, r := range rooms {
		catalog[r.ID] = r
	}

	assignments, err := resolveAssignments(snap.Assignments, catalog)
	if err != nil {
		return err
	}

	schedule := make(map[WeekKey]WeekEntry, len(snap.Schedule))
	for _, rec := range snap.Schedule {
		a, err := resolveAssignments(rec.Assignments, catalog)
		if err != nil {
			return fmt.Errorf("week %s: %w", rec.Key, err)
		}
		schedule[rec.Key] = WeekEntry{
			Key:         rec.Key,
			Start:       rec.Start.In(e.loc),
			End:         rec.End.In(e.loc),
			Assignments: a,
		}
	}

	loads := load.NewLedger()
	for id, n := range snap.Load {
		loads.Set(id, n)
	}

	e.mu.Lock()
	e.assignments = assignments
	e.schedule = schedule
	e.loads = loads
	e.version = snap.Version
	m := mutation{reason: ReasonRestore, assignments: assignments.Clone()}
	e.observeLoadsLocked()

	e.logger.Info("state restored",
		"collectiveID", e.cfg.CollectiveID,
		"version", snap.Version,
		"weeks", len(schedule))

	e.dispatchAndUnlock(ctx, m)

	return nil
}

// Snapshot captures the three ledgers in a serializable form.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.snapshotLocked()
}

// Assignments returns a copy of the current Assignment Ledger.
func (e *Engine) Assignments() Assignments {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.assignments.Clone()
}

// CurrentAssignmentsFor returns the member's rooms for the current week.
//
// Returns an empty slice for unknown members.
func (e *Engine) CurrentAssignmentsFor(memberID MemberID) []Room {
	e.mu.RLock()
	defer e.mu.RUnlock()

	rooms := e.assignments[memberID]
	if rooms == nil {
		return []Room{}
	}

	return slices.Clone(rooms)
}

// UpcomingAssignmentsFor returns the member's rooms for the current week and
// the following horizonWeeks weeks.
//
// Weeks missing from the schedule, and weeks in which the member holds no
// bucket, are omitted.
//
// Parameters:
//   - memberID: Member to look up
//   - horizonWeeks: Weeks after the current one; 0 is the current week only, negative uses Config.DefaultHorizonWeeks
//
// Returns:
//   - []UpcomingWeek: Chronological list, possibly empty
func (e *Engine) UpcomingAssignmentsFor(memberID MemberID, horizonWeeks int) []UpcomingWeek {
	if horizonWeeks < 0 {
		horizonWeeks = e.cfg.DefaultHorizonWeeks
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	out := []UpcomingWeek{}
	for _, w := range calendar.Sequence(e.now().In(e.loc), horizonWeeks+1) {
		entry, ok := e.schedule[w.Key]
		if !ok {
			continue
		}

		rooms, ok := entry.Assignments[memberID]
		if !ok {
			continue
		}

		out = append(out, UpcomingWeek{
			Key:   entry.Key,
			Start: entry.Start,
			End:   entry.End,
			Rooms: slices.Clone(rooms),
		})
	}

	return out
}

// IsAssigned reports whether the room is in the member's current bucket.
func (e *Engine) IsAssigned(memberID MemberID, roomID RoomID) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.assignments.Contains(memberID, roomID)
}

// Schedule returns every stored week in chronological order.
func (e *Engine) Schedule() []WeekEntry {
	e.mu.RLock()
	defer e.mu.RUnlock()

	keys := slices.SortedFunc(maps.Keys(e.schedule), WeekKey.Compare)
	out := make([]WeekEntry, len(keys))
	for i, k := range keys {
		out[i] = e.schedule[k]
		out[i].Assignments = out[i].Assignments.Clone()
	}

	return out
}

// WeekEntry returns the stored entry for a week.
func (e *Engine) WeekEntry(key WeekKey) (WeekEntry, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	entry, ok := e.schedule[key]
	if !ok {
		return WeekEntry{}, false
	}
	entry.Assignments = entry.Assignments.Clone()

	return entry, true
}

// CurrentWeek returns the ISO week the engine clock is in.
func (e *Engine) CurrentWeek() WeekKey {
	return calendar.KeyOf(e.now().In(e.loc))
}

// HistoricalLoad returns a copy of the Historical Load Ledger.
func (e *Engine) HistoricalLoad() map[MemberID]int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.loads.Snapshot()
}

// LoadOf returns the member's historical load (0 for unknown members).
func (e *Engine) LoadOf(memberID MemberID) int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.loads.Load(memberID)
}

// LoadSpread returns max - min historical load over every tracked member.
func (e *Engine) LoadSpread() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.loads.Spread(e.loads.Members())
}

// rotate runs the configured rotator and reports rebalancing moves when the
// rotator can provide them.
func (e *Engine) rotate(current Assignments, members []Member, loads LoadTracker) (Assignments, int, error) {
	if r, ok := e.rotator.(*strategy.Rotator); ok {
		res, err := r.RotateWithResult(current, members, loads)
		if err != nil {
			return nil, 0, err
		}

		return res.Assignments, res.Moves, nil
	}

	next, err := e.rotator.Rotate(current, members, loads)
	if err != nil {
		return nil, 0, err
	}

	return next, 0, nil
}

// observeLoadsLocked publishes load gauges. Caller must hold mu.
func (e *Engine) observeLoadsLocked() {
	ids := e.loads.Members()
	for _, id := range ids {
		e.metrics.RecordMemberLoad(id, e.loads.Load(id))
	}
	e.metrics.RecordLoadSpread(e.loads.Spread(ids))
}

// snapshotForHooksLocked attaches a snapshot to m. Caller must hold mu.
func (e *Engine) snapshotForHooksLocked(m *mutation) {
	snap := e.snapshotLocked()
	m.snapshot = &snap
}

func (e *Engine) snapshotLocked() Snapshot {
	keys := slices.SortedFunc(maps.Keys(e.schedule), WeekKey.Compare)
	records := make([]types.ScheduleRecord, len(keys))
	for i, k := range keys {
		entry := e.schedule[k]
		records[i] = types.ScheduleRecord{
			Key:         entry.Key,
			Start:       entry.Start,
			End:         entry.End,
			Assignments: entry.Assignments.RoomIDs(),
		}
	}

	return Snapshot{
		CollectiveID: e.cfg.CollectiveID,
		Version:      e.version,
		TakenAt:      e.now(),
		Assignments:  e.assignments.RoomIDs(),
		Schedule:     records,
		Load:         e.loads.Snapshot(),
	}
}

// dispatchAndUnlock hands the mutation to the hooks in mutation order.
//
// The mutation takes a ticket while mu is held, then releases mu before
// waiting for its turn, so a hook that reads the engine never waits behind
// a writer that is itself waiting to dispatch. Caller must hold mu.
func (e *Engine) dispatchAndUnlock(ctx context.Context, m mutation) {
	m.ticket = e.nextTicket
	e.nextTicket++
	e.mu.Unlock()

	e.dispatchMu.Lock()
	for e.serving != m.ticket {
		e.dispatchCond.Wait()
	}
	e.dispatchMu.Unlock()

	defer func() {
		e.dispatchMu.Lock()
		e.serving++
		e.dispatchCond.Broadcast()
		e.dispatchMu.Unlock()
	}()

	if m.reason != "" {
		e.callHook(ctx, "OnAssignmentsChanged", e.hooks.OnAssignmentsChanged(ctx, m.reason, m.assignments))
	}
	if m.entries != nil {
		e.callHook(ctx, "OnScheduleGenerated", e.hooks.OnScheduleGenerated(ctx, m.entries))
	}
	if m.snapshot != nil {
		e.callHook(ctx, "OnSnapshot", e.hooks.OnSnapshot(ctx, *m.snapshot))
	}
}

// callHook logs a failed hook and forwards the error to OnError.
func (e *Engine) callHook(ctx context.Context, name string, err error) {
	if err == nil {
		return
	}

	e.logger.Error("hook failed",
		"collectiveID", e.cfg.CollectiveID,
		"hook", name,
		"error", err)

	if hookErr := e.hooks.OnError(ctx, fmt.Errorf("%s: %w", name, err)); hookErr != nil {
		e.logger.Error("OnError hook failed", "error", hookErr)
	}
}

// resolveAssignments maps stored room ids back to rooms from the catalog.
func resolveAssignments(ids map[MemberID][]RoomID, catalog map[RoomID]Room) (Assignments, error) {
	out := make(Assignments, len(ids))
	for member, roomIDs := range ids {
		rooms := make([]Room, 0, len(roomIDs))
		for _, id := range roomIDs {
			r, ok := catalog[id]
			if !ok {
				return nil, fmt.Errorf("restore: room %q: %w", id, ErrUnknownRoom)
			}
			rooms = append(rooms, r.Clone())
		}
		out[member] = rooms
	}

	if room, dup := out.DuplicateRoom(); dup {
		return nil, types.NewInvalidStateError("restore", "room %q is assigned more than once", room)
	}

	return out, nil
}

func cloneEntries(entries []WeekEntry) []WeekEntry {
	out := make([]WeekEntry, len(entries))
	for i, entry := range entries {
		out[i] = entry
		out[i].Assignments = entry.Assignments.Clone()
	}

	return out
}
