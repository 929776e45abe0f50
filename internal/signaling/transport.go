package signaling

import (
	"context"
	"errors"
)

var ErrClosed = errors.New("signaling: transport closed")

// Handler consumes one inbound envelope. Handlers must be fast and must not
// block; anything slow belongs on the handler's own goroutine.
type Handler func(Envelope)

// Subscription is one active topic binding. Close is idempotent.
type Subscription interface {
	Close() error
}

// Transport is a named publish/subscribe channel carrying typed signaling
// events. Broadcasts are fire-and-forget: there is no acknowledgment
// protocol, and the broadcast echoes back to the publisher's own
// subscriptions, so consumers filter self-originated envelopes.
type Transport interface {
	Publish(ctx context.Context, topic string, env Envelope) error
	Subscribe(ctx context.Context, topic string, h Handler) (Subscription, error)
}
