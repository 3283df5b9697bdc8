package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Skaland01/Kollektiv/internal/logger"
	"github.com/Skaland01/Kollektiv/types"
)

type failingStore struct {
	*Memory
	err error
}

func (f *failingStore) Save(context.Context, string, types.Snapshot) error {
	return f.err
}

type deadlineStore struct {
	*Memory
	deadline time.Time
}

func (d *deadlineStore) Save(ctx context.Context, id string, snap types.Snapshot) error {
	d.deadline, _ = ctx.Deadline()
	return d.Memory.Save(ctx, id, snap)
}

func TestNewRecorder_Validation(t *testing.T) {
	_, err := NewRecorder(nil, "flat-42", time.Second, nil)
	require.ErrorIs(t, err, types.ErrStoreRequired)

	_, err = NewRecorder(NewMemory(), "", time.Second, nil)
	require.ErrorIs(t, err, types.ErrInvalidCollectiveID)

	rec, err := NewRecorder(NewMemory(), "flat-42", 0, nil)
	require.NoError(t, err)
	require.Equal(t, DefaultTimeout, rec.timeout)
}

func TestRecorder_SkipsUnchangedContent(t *testing.T) {
	ctx := context.Background()
	st := NewMemory()
	rec, err := NewRecorder(st, "flat-42", time.Second, logger.NewTest(t))
	require.NoError(t, err)

	require.NoError(t, rec.Record(ctx, sampleSnapshot(1)))

	same := sampleSnapshot(1)
	same.Version = 2
	same.TakenAt = takenAt.Add(time.Minute)
	require.NoError(t, rec.Record(ctx, same))

	require.NoError(t, rec.Record(ctx, sampleSnapshot(3)))

	saves, skips := rec.Stats()
	require.Equal(t, 2, saves)
	require.Equal(t, 1, skips)

	got, err := st.Load(ctx, "flat-42")
	require.NoError(t, err)
	require.Equal(t, int64(3), got.Version)
}

func TestRecorder_HooksBindRecord(t *testing.T) {
	st := NewMemory()
	rec, err := NewRecorder(st, "flat-42", time.Second, nil)
	require.NoError(t, err)

	h := rec.Hooks()
	require.Nil(t, h.OnAssignmentsChanged)
	require.NoError(t, h.OnSnapshot(context.Background(), sampleSnapshot(1)))
	require.Equal(t, 1, st.Len())
}

func TestRecorder_Errors(t *testing.T) {
	t.Run("store failure is returned and not remembered", func(t *testing.T) {
		boom := errors.New("store down")
		fs := &failingStore{Memory: NewMemory(), err: boom}
		rec, err := NewRecorder(fs, "flat-42", time.Second, nil)
		require.NoError(t, err)

		require.ErrorIs(t, rec.Record(context.Background(), sampleSnapshot(1)), boom)
		require.ErrorIs(t, rec.Record(context.Background(), sampleSnapshot(1)), boom, "failed content is retried")
	})

	t.Run("stale snapshot is logged", func(t *testing.T) {
		ctx := context.Background()
		st := NewMemory()
		require.NoError(t, st.Save(ctx, "flat-42", sampleSnapshot(5)))

		logs := logger.NewRecorder()
		rec, err := NewRecorder(st, "flat-42", time.Second, logs)
		require.NoError(t, err)

		err = rec.Record(ctx, sampleSnapshot(2))
		require.ErrorIs(t, err, types.ErrStaleSnapshot)
		require.Len(t, logs.Find("warn", "snapshot rejected as stale"), 1)
	})
}

func TestRecorder_AppliesTimeout(t *testing.T) {
	ds := &deadlineStore{Memory: NewMemory()}
	rec, err := NewRecorder(ds, "flat-42", 3*time.Second, nil)
	require.NoError(t, err)

	before := time.Now()
	require.NoError(t, rec.Record(context.Background(), sampleSnapshot(1)))

	require.False(t, ds.deadline.IsZero())
	require.WithinDuration(t, before.Add(3*time.Second), ds.deadline, time.Second)
}

func TestRecorder_LoadPrimesChecksum(t *testing.T) {
	ctx := context.Background()
	st := NewMemory()
	require.NoError(t, st.Save(ctx, "flat-42", sampleSnapshot(4)))

	rec, err := NewRecorder(st, "flat-42", time.Second, nil)
	require.NoError(t, err)

	snap, err := rec.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(4), snap.Version)

	require.NoError(t, rec.Record(ctx, snap))
	saves, skips := rec.Stats()
	require.Zero(t, saves)
	require.Equal(t, 1, skips)
}
