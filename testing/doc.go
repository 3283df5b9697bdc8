// Package testing provides test utilities for code built on Kollektiv.
//
// It offers in-process backends for the snapshot stores so store-backed
// engines can be tested without external services, in the spirit of
// net/http/httptest.
//
// Key utilities:
//   - StartEmbeddedNATS: Single NATS server with JetStream
//   - CreateJetStreamKV: Convenience wrapper for KV bucket creation
//   - StartMiniRedis: In-memory Redis server with a connected client
//   - NewTestLogger: Logger writing through testing.TB
//
// Example usage:
//
//	import (
//	    "testing"
//	    kollektivtest "github.com/Skaland01/Kollektiv/testing"
//	)
//
//	func TestSnapshots(t *testing.T) {
//	    _, nc := kollektivtest.StartEmbeddedNATS(t)
//	    // Use nc for your tests
//	}
package testing
