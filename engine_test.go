package kollektiv

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/Skaland01/Kollektiv/internal/logger"
	"github.com/Skaland01/Kollektiv/internal/metrics"
	"github.com/Skaland01/Kollektiv/store"
	"github.com/Skaland01/Kollektiv/strategy"
	"github.com/Skaland01/Kollektiv/test/testutil"
	"github.com/Skaland01/Kollektiv/types"
)

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()

	cfg := TestConfig()
	opts = append([]Option{WithClock(testutil.FixedClock(testutil.Wednesday))}, opts...)
	eng, err := NewEngine(&cfg, opts...)
	require.NoError(t, err)

	return eng
}

func roomIDs(rooms []Room) []RoomID {
	return testutil.RoomIDs(rooms)
}

func TestNewEngine(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		_, err := NewEngine(nil)
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := TestConfig()
		cfg.RebalanceTolerance = 0.1
		_, err := NewEngine(&cfg)
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("applies defaults in place", func(t *testing.T) {
		cfg := Config{TimeZone: "UTC"}
		eng, err := NewEngine(&cfg)
		require.NoError(t, err)

		require.Equal(t, "default", eng.CollectiveID())
		require.Equal(t, 4, cfg.DefaultHorizonWeeks)
		require.Equal(t, int64(0), eng.Version())
		require.Empty(t, eng.Assignments())
		require.Empty(t, eng.Schedule())
		require.Empty(t, eng.HistoricalLoad())
	})

	t.Run("nil options are ignored", func(t *testing.T) {
		cfg := TestConfig()
		_, err := NewEngine(&cfg, nil, WithLogger(logger.NewNop()))
		require.NoError(t, err)
	})
}

func TestEngine_Distribute(t *testing.T) {
	ctx := context.Background()
	rooms := testutil.NamedRooms("A", "B", "C", "D", "E")
	members := testutil.Members(3)

	t.Run("first distribution", func(t *testing.T) {
		eng := newTestEngine(t)

		got := eng.Distribute(ctx, rooms, members)
		testutil.AssertConservation(t, rooms, got)

		require.Equal(t, []RoomID{"A", "D"}, roomIDs(got["m1"]))
		require.Equal(t, []RoomID{"B", "E"}, roomIDs(got["m2"]))
		require.Equal(t, []RoomID{"C"}, roomIDs(got["m3"]))

		require.Equal(t, map[MemberID]int{"m1": 2, "m2": 2, "m3": 1}, eng.HistoricalLoad())
		require.Equal(t, 1, eng.LoadSpread())
		require.Equal(t, int64(1), eng.Version())
		require.True(t, eng.IsAssigned("m1", "D"))
		require.False(t, eng.IsAssigned("m3", "D"))
		require.Equal(t, []RoomID{"C"}, roomIDs(eng.CurrentAssignmentsFor("m3")))
	})

	t.Run("second distribution favors the least loaded", func(t *testing.T) {
		eng := newTestEngine(t)

		eng.Distribute(ctx, rooms, members)
		got := eng.Distribute(ctx, rooms, members)

		// m3 (load 1) is served first.
		require.Equal(t, []RoomID{"A", "D"}, roomIDs(got["m3"]))
		require.Equal(t, []RoomID{"B", "E"}, roomIDs(got["m1"]))
		require.Equal(t, []RoomID{"C"}, roomIDs(got["m2"]))
		require.Equal(t, map[MemberID]int{"m1": 4, "m2": 3, "m3": 3}, eng.HistoricalLoad())
	})

	t.Run("returned ledger is owned by the caller", func(t *testing.T) {
		eng := newTestEngine(t)

		got := eng.Distribute(ctx, rooms, members)
		got["m1"] = nil

		require.Len(t, eng.CurrentAssignmentsFor("m1"), 2)
	})

	t.Run("empty input leaves the engine untouched", func(t *testing.T) {
		var calls int
		eng := newTestEngine(t, WithHooks(&Hooks{
			OnSnapshot: func(context.Context, Snapshot) error {
				calls++
				return nil
			},
		}))

		require.Empty(t, eng.Distribute(ctx, nil, members))
		require.Empty(t, eng.Distribute(ctx, rooms, nil))
		require.Equal(t, int64(0), eng.Version())
		require.Empty(t, eng.HistoricalLoad())
		require.Zero(t, calls)
	})

	t.Run("round robin distributor", func(t *testing.T) {
		eng := newTestEngine(t, WithDistributor(strategy.NewRoundRobin()))

		got := eng.Distribute(ctx, rooms, members)
		require.Equal(t, []RoomID{"A", "D"}, roomIDs(got["m1"]))
		require.Equal(t, []RoomID{"C"}, roomIDs(got["m3"]))
	})
}

func TestEngine_Rotate(t *testing.T) {
	ctx := context.Background()
	rooms := testutil.NamedRooms("A", "B", "C", "D", "E")
	members := testutil.Members(3)

	t.Run("hands each bucket to the previous member", func(t *testing.T) {
		eng := newTestEngine(t)
		eng.Distribute(ctx, rooms, members)

		next, err := eng.Rotate(ctx, members)
		require.NoError(t, err)

		require.Equal(t, []RoomID{"B", "E"}, roomIDs(next["m1"]))
		require.Equal(t, []RoomID{"C"}, roomIDs(next["m2"]))
		require.Equal(t, []RoomID{"A", "D"}, roomIDs(next["m3"]))
		require.Equal(t, map[MemberID]int{"m1": 4, "m2": 3, "m3": 3}, eng.HistoricalLoad())
		require.Equal(t, int64(2), eng.Version())
	})

	t.Run("empty ledger", func(t *testing.T) {
		eng := newTestEngine(t)

		next, err := eng.Rotate(ctx, members)
		require.NoError(t, err)
		require.Empty(t, next)
		require.Equal(t, int64(0), eng.Version())
	})

	t.Run("membership change is rejected without side effects", func(t *testing.T) {
		eng := newTestEngine(t)
		eng.Distribute(ctx, rooms, members)
		before := eng.Snapshot()

		_, err := eng.Rotate(ctx, testutil.Members(4))
		require.ErrorIs(t, err, ErrInvalidState)

		var stateErr *InvalidStateError
		require.ErrorAs(t, err, &stateErr)
		require.Equal(t, "rotate", stateErr.Op)

		after := eng.Snapshot()
		require.Equal(t, before.Version, after.Version)
		require.Equal(t, before.Assignments, after.Assignments)
		require.Equal(t, before.Load, after.Load)
	})
}

func TestEngine_GenerateSchedule(t *testing.T) {
	ctx := context.Background()
	rooms := testutil.Rooms(5)
	members := testutil.Members(3)

	t.Run("four Monday-start weeks from the current week", func(t *testing.T) {
		eng := newTestEngine(t)

		entries, err := eng.GenerateSchedule(ctx, rooms, members, 4)
		require.NoError(t, err)
		require.Len(t, entries, 4)

		wantKeys := []WeekKey{
			{Year: 2026, Week: 42}, {Year: 2026, Week: 43}, {Year: 2026, Week: 44}, {Year: 2026, Week: 45},
		}
		wantStart := time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)

		total := 0
		for i, e := range entries {
			require.Equal(t, wantKeys[i], e.Key)
			require.True(t, e.Start.Equal(wantStart.AddDate(0, 0, 7*i)), "week %d starts %s", i, e.Start)
			require.Equal(t, time.Monday, e.Start.Weekday())
			require.Equal(t, time.Sunday, e.End.Weekday())
			require.Equal(t, 6*24*time.Hour, e.End.Sub(e.Start))
			testutil.AssertConservation(t, rooms, e.Assignments)
			total += e.TotalRooms()
		}
		require.Equal(t, 4*len(rooms), total)

		require.Equal(t, entries[0].Assignments, eng.Assignments())
		require.Len(t, eng.Schedule(), 4)

		sum := 0
		for _, n := range eng.HistoricalLoad() {
			sum += n
		}
		require.Equal(t, 4*len(rooms), sum)
	})

	t.Run("consecutive weeks are rotations", func(t *testing.T) {
		eng := newTestEngine(t)

		entries, err := eng.GenerateSchedule(ctx, rooms, members, 2)
		require.NoError(t, err)

		rot := strategy.NewRotator()
		want, err := rot.Rotate(entries[0].Assignments, members, newNopTracker())
		require.NoError(t, err)
		require.Equal(t, want, entries[1].Assignments)
	})

	t.Run("year boundary", func(t *testing.T) {
		eng := newTestEngine(t, WithClock(testutil.FixedClock(time.Date(2026, 12, 30, 9, 0, 0, 0, time.UTC))))

		entries, err := eng.GenerateSchedule(ctx, rooms, members, 3)
		require.NoError(t, err)

		require.Equal(t, WeekKey{Year: 2026, Week: 53}, entries[0].Key)
		require.Equal(t, WeekKey{Year: 2027, Week: 1}, entries[1].Key)
		require.Equal(t, WeekKey{Year: 2027, Week: 2}, entries[2].Key)
		require.True(t, entries[1].Start.Equal(time.Date(2027, 1, 4, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("regeneration overwrites only its own weeks", func(t *testing.T) {
		eng := newTestEngine(t)

		_, err := eng.GenerateSchedule(ctx, rooms, members, 4)
		require.NoError(t, err)
		last, ok := eng.WeekEntry(WeekKey{Year: 2026, Week: 45})
		require.True(t, ok)

		_, err = eng.GenerateSchedule(ctx, rooms, members, 2)
		require.NoError(t, err)

		require.Len(t, eng.Schedule(), 4)
		kept, ok := eng.WeekEntry(WeekKey{Year: 2026, Week: 45})
		require.True(t, ok)
		require.Equal(t, last.Assignments, kept.Assignments)
		require.Equal(t, int64(2), eng.Version())
	})

	t.Run("empty input", func(t *testing.T) {
		eng := newTestEngine(t)

		for _, weeks := range []int{0, -1} {
			entries, err := eng.GenerateSchedule(ctx, rooms, members, weeks)
			require.NoError(t, err)
			require.Empty(t, entries)
		}

		entries, err := eng.GenerateSchedule(ctx, nil, members, 4)
		require.NoError(t, err)
		require.Empty(t, entries)

		require.Equal(t, int64(0), eng.Version())
		require.Empty(t, eng.Schedule())
	})

	t.Run("failing rotator leaves the engine untouched", func(t *testing.T) {
		boom := errors.New("boom")
		eng := newTestEngine(t, WithRotator(failingRotator{err: boom}))

		_, err := eng.GenerateSchedule(ctx, rooms, members, 3)
		require.ErrorIs(t, err, boom)

		require.Equal(t, int64(0), eng.Version())
		require.Empty(t, eng.Schedule())
		require.Empty(t, eng.Assignments())
		require.Empty(t, eng.HistoricalLoad())
	})

	t.Run("stored weeks do not share tasks with the caller", func(t *testing.T) {
		eng := newTestEngine(t)
		household := []Room{
			types.NewRoom("Kitchen", CategoryKitchen),
			types.NewRoom("Bathroom", CategoryBathroom),
		}

		_, err := eng.GenerateSchedule(ctx, household, members, 2)
		require.NoError(t, err)

		for i := range household {
			require.True(t, household[i].CompleteTask(household[i].Tasks[0].ID, testutil.Wednesday))
		}

		for _, entry := range eng.Schedule() {
			for _, bucket := range entry.Assignments {
				for _, r := range bucket {
					require.False(t, r.Tasks[0].Completed, "week %s room %s", entry.Key, r.Name)
				}
			}
		}
		for _, bucket := range eng.Assignments() {
			for _, r := range bucket {
				require.False(t, r.Tasks[0].Completed)
			}
		}
	})

	t.Run("load spread stays bounded", func(t *testing.T) {
		eng := newTestEngine(t)
		rooms := testutil.Rooms(7)

		_, err := eng.GenerateSchedule(ctx, rooms, members, 12)
		require.NoError(t, err)
		require.LessOrEqual(t, eng.LoadSpread(), len(rooms))
		require.Equal(t, 0, eng.LoadSpread())
	})
}

func TestEngine_UpcomingAssignmentsFor(t *testing.T) {
	ctx := context.Background()
	rooms := testutil.Rooms(4)
	members := testutil.Members(2)

	now := testutil.Wednesday
	var mu sync.Mutex
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}

	eng := newTestEngine(t, WithClock(clock))
	entries, err := eng.GenerateSchedule(ctx, rooms, members, 3)
	require.NoError(t, err)

	t.Run("weeks without entries are omitted", func(t *testing.T) {
		got := eng.UpcomingAssignmentsFor("m1", 4)
		require.Len(t, got, 3)
		for i, w := range got {
			require.Equal(t, entries[i].Key, w.Key)
			require.Equal(t, entries[i].Assignments["m1"], w.Rooms)
		}
	})

	t.Run("horizon counts weeks after the current one", func(t *testing.T) {
		require.Len(t, eng.UpcomingAssignmentsFor("m1", 1), 2)
	})

	t.Run("zero horizon is the current week only", func(t *testing.T) {
		got := eng.UpcomingAssignmentsFor("m1", 0)
		require.Len(t, got, 1)
		require.Equal(t, entries[0].Key, got[0].Key)
	})

	t.Run("negative horizon uses the default", func(t *testing.T) {
		require.Len(t, eng.UpcomingAssignmentsFor("m1", -1), 3)
	})

	t.Run("unknown member", func(t *testing.T) {
		require.Empty(t, eng.UpcomingAssignmentsFor("nobody", 4))
		require.Empty(t, eng.CurrentAssignmentsFor("nobody"))
	})

	t.Run("follows the clock", func(t *testing.T) {
		mu.Lock()
		now = testutil.Wednesday.AddDate(0, 0, 14)
		mu.Unlock()

		require.Equal(t, WeekKey{Year: 2026, Week: 44}, eng.CurrentWeek())
		got := eng.UpcomingAssignmentsFor("m2", 4)
		require.Len(t, got, 1)
		require.Equal(t, WeekKey{Year: 2026, Week: 44}, got[0].Key)
	})
}

func TestEngine_ResetHistory(t *testing.T) {
	ctx := context.Background()
	eng := newTestEngine(t)
	rooms := testutil.Rooms(3)

	eng.Distribute(ctx, rooms, testutil.Members(2))
	require.NotEmpty(t, eng.HistoricalLoad())

	eng.ResetHistory(ctx)

	require.Empty(t, eng.HistoricalLoad())
	require.Equal(t, 0, eng.LoadOf("m1"))
	require.Equal(t, 3, eng.Assignments().TotalRooms(), "assignments survive a reset")
	require.Equal(t, int64(2), eng.Version())
}

func TestEngine_SnapshotRestore(t *testing.T) {
	ctx := context.Background()
	rooms := testutil.Rooms(5)
	members := testutil.Members(3)

	src := newTestEngine(t)
	_, err := src.GenerateSchedule(ctx, rooms, members, 3)
	require.NoError(t, err)

	data, err := src.Snapshot().Marshal()
	require.NoError(t, err)
	snap, err := types.UnmarshalSnapshot(data)
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		dst := newTestEngine(t)
		require.NoError(t, dst.Restore(ctx, snap, rooms))

		require.Equal(t, src.Version(), dst.Version())
		require.Equal(t, src.Assignments(), dst.Assignments())
		require.Equal(t, src.HistoricalLoad(), dst.HistoricalLoad())

		want, got := src.Schedule(), dst.Schedule()
		require.Len(t, got, len(want))
		for i := range want {
			require.Equal(t, want[i].Key, got[i].Key)
			require.True(t, want[i].Start.Equal(got[i].Start))
			require.True(t, want[i].End.Equal(got[i].End))
			require.Equal(t, want[i].Assignments, got[i].Assignments)
		}

		// Both engines continue identically.
		a, err := src.Rotate(ctx, members)
		require.NoError(t, err)
		b, err := dst.Rotate(ctx, members)
		require.NoError(t, err)
		require.Equal(t, a, b)
	})

	t.Run("unknown room", func(t *testing.T) {
		dst := newTestEngine(t)

		err := dst.Restore(ctx, snap, rooms[:4])
		require.ErrorIs(t, err, ErrUnknownRoom)
		require.Equal(t, int64(0), dst.Version())
		require.Empty(t, dst.Assignments())
	})

	t.Run("foreign collective", func(t *testing.T) {
		dst := newTestEngine(t)
		foreign := snap
		foreign.CollectiveID = "someone-else"

		err := dst.Restore(ctx, foreign, rooms)
		require.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("room held twice", func(t *testing.T) {
		dst := newTestEngine(t)
		dup := Snapshot{
			CollectiveID: "test-collective",
			Assignments:  map[MemberID][]RoomID{"m1": {"room-00"}, "m2": {"room-00"}},
		}

		err := dst.Restore(ctx, dup, rooms)
		var stateErr *InvalidStateError
		require.ErrorAs(t, err, &stateErr)
		require.Equal(t, "restore", stateErr.Op)
	})

	t.Run("snapshot content", func(t *testing.T) {
		s := src.Snapshot()
		require.Equal(t, "test-collective", s.CollectiveID)
		require.Len(t, s.Schedule, 3)
		require.True(t, s.TakenAt.Equal(testutil.Wednesday))

		raw, err := json.Marshal(s.Assignments)
		require.NoError(t, err)
		require.Contains(t, string(raw), `"m1":[`)
	})
}

func TestEngine_Hooks(t *testing.T) {
	ctx := context.Background()
	rooms := testutil.Rooms(4)
	members := testutil.Members(2)

	t.Run("events in mutation order", func(t *testing.T) {
		var events []string
		eng := newTestEngine(t, WithHooks(&Hooks{
			OnAssignmentsChanged: func(_ context.Context, reason string, a Assignments) error {
				events = append(events, "assignments:"+reason)
				return nil
			},
			OnScheduleGenerated: func(_ context.Context, entries []WeekEntry) error {
				events = append(events, "schedule")
				require.Len(t, entries, 2)
				return nil
			},
			OnSnapshot: func(_ context.Context, s Snapshot) error {
				events = append(events, "snapshot")
				return nil
			},
		}))

		eng.Distribute(ctx, rooms, members)
		_, err := eng.Rotate(ctx, members)
		require.NoError(t, err)
		_, err = eng.GenerateSchedule(ctx, rooms, members, 2)
		require.NoError(t, err)
		eng.ResetHistory(ctx)

		require.Equal(t, []string{
			"assignments:distribute", "snapshot",
			"assignments:rotate", "snapshot",
			"assignments:schedule", "schedule", "snapshot",
			"snapshot",
		}, events)
	})

	t.Run("hook errors are reported, not returned", func(t *testing.T) {
		boom := errors.New("boom")
		rec := logger.NewRecorder()
		var reported []error

		eng := newTestEngine(t,
			WithLogger(rec),
			WithHooks(&Hooks{
				OnSnapshot: func(context.Context, Snapshot) error { return boom },
				OnError: func(_ context.Context, err error) error {
					reported = append(reported, err)
					return nil
				},
			}),
		)

		got := eng.Distribute(ctx, rooms, members)
		require.Equal(t, 4, got.TotalRooms())
		require.Equal(t, int64(1), eng.Version())

		require.Len(t, reported, 1)
		require.ErrorIs(t, reported[0], boom)

		failed := rec.Find("error", "hook failed")
		require.Len(t, failed, 1)
		require.Equal(t, "OnSnapshot", failed[0].Value("hook"))
	})

	t.Run("hooks may read the engine", func(t *testing.T) {
		var seen int
		var eng *Engine
		eng = newTestEngine(t, WithHooks(&Hooks{
			OnAssignmentsChanged: func(context.Context, string, Assignments) error {
				seen = eng.Assignments().TotalRooms()
				return nil
			},
		}))

		eng.Distribute(ctx, rooms, members)
		require.Equal(t, 4, seen)
	})

	t.Run("hooks may read the engine while another writer is queued", func(t *testing.T) {
		entered := make(chan struct{})
		release := make(chan struct{})
		var calls atomic.Int32
		var reasons []string
		var eng *Engine
		eng = newTestEngine(t, WithHooks(&Hooks{
			OnAssignmentsChanged: func(_ context.Context, reason string, _ Assignments) error {
				if calls.Add(1) == 1 {
					close(entered)
					<-release
				}
				_ = eng.Assignments()
				_ = eng.Version()
				reasons = append(reasons, reason)
				return nil
			},
		}))

		done := make(chan struct{}, 2)
		go func() {
			eng.Distribute(ctx, rooms, members)
			done <- struct{}{}
		}()
		<-entered

		go func() {
			_, _ = eng.Rotate(ctx, members)
			done <- struct{}{}
		}()
		require.Eventually(t, func() bool { return eng.Version() == 2 }, 2*time.Second, time.Millisecond)
		close(release)

		for range 2 {
			select {
			case <-done:
			case <-time.After(2 * time.Second):
				t.Fatal("writers did not finish: hook read blocked behind a queued writer")
			}
		}
		require.Equal(t, int32(2), calls.Load())
		require.Equal(t, []string{ReasonDistribute, ReasonRotate}, reasons)
	})

	t.Run("recorder persists every change", func(t *testing.T) {
		mem := store.NewMemory()
		rec, err := store.NewRecorder(mem, "test-collective", time.Second, nil)
		require.NoError(t, err)

		eng := newTestEngine(t, WithHooks(rec.Hooks()))
		_, err = eng.GenerateSchedule(ctx, rooms, members, 3)
		require.NoError(t, err)
		_, err = eng.Rotate(ctx, members)
		require.NoError(t, err)

		stored, err := mem.Load(ctx, "test-collective")
		require.NoError(t, err)
		require.Equal(t, eng.Version(), stored.Version)
		require.Equal(t, eng.Snapshot().Checksum(), stored.Checksum())

		saves, _ := rec.Stats()
		require.Equal(t, 2, saves)
	})
}

func TestEngine_Metrics(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	eng := newTestEngine(t, WithMetrics(metrics.NewPrometheus(reg, "kollektiv")))
	members := testutil.Members(3)

	eng.Distribute(ctx, testutil.Rooms(6), members)
	_, err := eng.Rotate(ctx, members)
	require.NoError(t, err)
	_, err = eng.Rotate(ctx, testutil.Members(2))
	require.Error(t, err)

	require.InDelta(t, 1, gatheredValue(t, reg, "kollektiv_distribution_runs_total"), 0)
	require.InDelta(t, 2, gatheredValue(t, reg, "kollektiv_rotation_runs_total"), 0)
	require.InDelta(t, 12, gatheredValue(t, reg, "kollektiv_load_member_rooms"), 0, "m1..m3 hold 4 rooms each")
	require.InDelta(t, 0, gatheredValue(t, reg, "kollektiv_load_spread"), 0)
}

func TestEngine_ConcurrentRotations(t *testing.T) {
	ctx := context.Background()
	rooms := testutil.Rooms(9)
	members := testutil.Members(4)

	var (
		hookMu   sync.Mutex
		versions []int64
	)
	eng := newTestEngine(t, WithHooks(&Hooks{
		OnSnapshot: func(_ context.Context, s Snapshot) error {
			hookMu.Lock()
			versions = append(versions, s.Version)
			hookMu.Unlock()
			return nil
		},
	}))
	eng.Distribute(ctx, rooms, members)

	const workers, rounds = 8, 25
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range rounds {
				_, err := eng.Rotate(ctx, members)
				if err != nil {
					t.Errorf("rotate: %v", err)
					return
				}
				_ = eng.CurrentAssignmentsFor("m1")
				_ = eng.UpcomingAssignmentsFor("m2", 2)
				_ = eng.LoadSpread()
			}
		}()
	}
	wg.Wait()

	testutil.AssertConservation(t, rooms, eng.Assignments())
	require.Equal(t, int64(1+workers*rounds), eng.Version())

	sum := 0
	for _, n := range eng.HistoricalLoad() {
		sum += n
	}
	require.Equal(t, (1+workers*rounds)*len(rooms), sum)

	hookMu.Lock()
	defer hookMu.Unlock()
	require.Len(t, versions, 1+workers*rounds)
	for i := 1; i < len(versions); i++ {
		require.Greater(t, versions[i], versions[i-1], "snapshots delivered out of order")
	}
}

// gatheredValue sums every sample of a counter or gauge family.
func gatheredValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	for _, f := range families {
		if f.GetName() != name {
			continue
		}

		total := 0.0
		for _, m := range f.GetMetric() {
			total += m.GetCounter().GetValue() + m.GetGauge().GetValue()
		}

		return total
	}

	t.Fatalf("metric %s not gathered", name)

	return 0
}

type failingRotator struct {
	err error
}

func (f failingRotator) Rotate(Assignments, []Member, LoadTracker) (Assignments, error) {
	return nil, f.err
}

type nopTracker struct{}

func newNopTracker() LoadTracker { return nopTracker{} }

func (nopTracker) Load(MemberID) int { return 0 }
func (nopTracker) Add(MemberID, int) {}
