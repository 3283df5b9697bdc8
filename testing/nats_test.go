package testing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStartEmbeddedNATS(t *testing.T) {
	ns, nc := StartEmbeddedNATS(t)

	require.NotNil(t, ns)
	require.True(t, nc.IsConnected())
	require.True(t, ns.ReadyForConnections(1*time.Second))
}

func TestStartEmbeddedNATS_Parallel(t *testing.T) {
	t.Parallel()

	for range 3 {
		t.Run("parallel", func(t *testing.T) {
			t.Parallel()

			_, nc := StartEmbeddedNATS(t)
			require.True(t, nc.IsConnected())
		})
	}
}

func TestCreateJetStreamKV(t *testing.T) {
	_, nc := StartEmbeddedNATS(t)
	kv := CreateJetStreamKV(t, nc, "kollektiv-test")

	ctx := context.Background()
	_, err := kv.Put(ctx, "collective.flat-42", []byte(`{"version":1}`))
	require.NoError(t, err)

	entry, err := kv.Get(ctx, "collective.flat-42")
	require.NoError(t, err)
	require.JSONEq(t, `{"version":1}`, string(entry.Value()))
}

func TestStartMiniRedis(t *testing.T) {
	mr, client := StartMiniRedis(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "kollektiv:flat-42", "x", 0).Err())
	got, err := mr.Get("kollektiv:flat-42")
	require.NoError(t, err)
	require.Equal(t, "x", got)
}

func TestNewTestLogger(t *testing.T) {
	l := NewTestLogger(t)
	require.NotPanics(t, func() {
		l.Info("schedule generated", "weeks", 4)
	})
}
