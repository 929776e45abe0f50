package notify

import (
	"context"
	"sync"
)

// MemoryRepo is a simple in-memory repository useful for tests.
// It is not intended for production use.

type MemoryRepo struct {
	mu   sync.Mutex
	rows []Notification

	// FailWith, when set, makes Insert return this error. Tests use it to
	// prove that notification failures never break call flow.
	FailWith error
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{} }

func (r *MemoryRepo) Insert(ctx context.Context, n Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return r.FailWith
	}
	r.rows = append(r.rows, n)
	return nil
}

func (r *MemoryRepo) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.rows))
	copy(out, r.rows)
	return out
}

// ByType filters stored notifications; test convenience.
func (r *MemoryRepo) ByType(t NotificationType) []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Notification
	for _, n := range r.rows {
		if n.Type == t {
			out = append(out, n)
		}
	}
	return out
}
