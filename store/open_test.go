package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	kollektivtest "github.com/Skaland01/Kollektiv/testing"
)

func testOpenOptions() OpenOptions {
	return OpenOptions{
		Bucket:    "kollektiv-snapshots",
		KeyPrefix: "collective",
		Table:     "kollektiv_snapshots",
		Timeout:   5 * time.Second,
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		h, err := Open(ctx, "memory://", testOpenOptions())
		require.NoError(t, err)
		defer h.Close()

		require.IsType(t, &Memory{}, h.SnapshotStore)
	})

	t.Run("nats", func(t *testing.T) {
		ns, _ := kollektivtest.StartEmbeddedNATS(t)

		h, err := Open(ctx, ns.ClientURL(), testOpenOptions())
		require.NoError(t, err)
		defer h.Close()

		require.IsType(t, &NATSKV{}, h.SnapshotStore)
		require.NoError(t, h.Save(ctx, "flat-42", sampleSnapshot(1)))
	})

	t.Run("redis", func(t *testing.T) {
		mr, _ := kollektivtest.StartMiniRedis(t)

		h, err := Open(ctx, "redis://"+mr.Addr(), testOpenOptions())
		require.NoError(t, err)

		require.IsType(t, &Redis{}, h.SnapshotStore)
		require.NoError(t, h.Save(ctx, "flat-42", sampleSnapshot(1)))
		require.True(t, mr.Exists("collective:flat-42"))
		require.NoError(t, h.Close())
	})

	t.Run("unsupported scheme", func(t *testing.T) {
		_, err := Open(ctx, "ftp://example.com", testOpenOptions())
		require.ErrorContains(t, err, "unsupported store scheme")
	})

	t.Run("invalid url", func(t *testing.T) {
		_, err := Open(ctx, "://nope", testOpenOptions())
		require.Error(t, err)
	})
}
