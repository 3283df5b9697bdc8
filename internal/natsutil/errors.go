// Package natsutil classifies NATS client errors for the snapshot store.
package natsutil

import (
	"context"
	"errors"
	"net"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// unreachable lists client errors meaning the server could not be asked.
var unreachable = []error{
	nats.ErrTimeout,
	nats.ErrNoServers,
	nats.ErrDisconnected,
	nats.ErrConnectionClosed,
	nats.ErrConnectionReconnecting,
	nats.ErrNoResponders,
	jetstream.ErrNoStreamResponse,
	jetstream.ErrJetStreamNotEnabled,
	context.DeadlineExceeded,
}

// IsConnectivityError reports whether err means the snapshot server was
// unreachable, as opposed to the server answering with a rejection.
//
// The store wraps these in types.ErrStoreUnavailable and OpenSnapshotBucket
// retries them. A missing key, a revision conflict or a cancelled context is
// not a connectivity error.
//
// Parameters:
//   - err: Error returned by a NATS or JetStream call
//
// Returns:
//   - bool: true when retrying later may succeed
func IsConnectivityError(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	for _, target := range unreachable {
		if errors.Is(err, target) {
			return true
		}
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
