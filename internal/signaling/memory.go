package signaling

import (
	"context"
	"sync"
)

// MemoryTransport is an in-process Transport useful for tests and for
// single-node development without Redis. Delivery is synchronous and
// mirrors the broadcast echo: the publisher's own subscriptions receive
// the envelope too.
type MemoryTransport struct {
	mu     sync.Mutex
	closed bool
	nextID int
	subs   map[string]map[int]Handler // topic -> sub id -> handler
}

func NewMemoryTransport() *MemoryTransport {
	return &MemoryTransport{subs: make(map[string]map[int]Handler)}
}

func (t *MemoryTransport) Publish(ctx context.Context, topic string, env Envelope) error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ErrClosed
	}
	handlers := make([]Handler, 0, len(t.subs[topic]))
	for _, h := range t.subs[topic] {
		handlers = append(handlers, h)
	}
	t.mu.Unlock()

	// Deliver outside the lock so handlers may publish in turn.
	for _, h := range handlers {
		h(env)
	}
	return nil
}

func (t *MemoryTransport) Subscribe(ctx context.Context, topic string, h Handler) (Subscription, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil, ErrClosed
	}
	if t.subs[topic] == nil {
		t.subs[topic] = make(map[int]Handler)
	}
	t.nextID++
	id := t.nextID
	t.subs[topic][id] = h
	return &memorySubscription{t: t, topic: topic, id: id}, nil
}

// Close drops all subscriptions and rejects further use.
func (t *MemoryTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	t.subs = make(map[string]map[int]Handler)
	return nil
}

type memorySubscription struct {
	t     *MemoryTransport
	topic string
	id    int
}

func (s *memorySubscription) Close() error {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()
	if m := s.t.subs[s.topic]; m != nil {
		delete(m, s.id)
		if len(m) == 0 {
			delete(s.t.subs, s.topic)
		}
	}
	return nil
}
