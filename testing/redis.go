package testing

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

// StartMiniRedis starts an in-memory Redis server and returns a client
// connected to it. Both are closed by t.Cleanup.
//
// Example:
//
//	mr, client := kollektivtest.StartMiniRedis(t)
//	st := store.NewRedis(client, "kollektiv")
//	mr.FastForward(time.Hour)
func StartMiniRedis(t testing.TB) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})

	return mr, client
}
