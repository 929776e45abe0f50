package appointments

import (
	"context"
	"sync"
)

// MemoryRepo is a simple in-memory repository useful for tests.
// It is not intended for production use.

type MemoryRepo struct {
	mu   sync.Mutex
	rows map[string]Appointment // keyed by workspace|id
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{rows: make(map[string]Appointment)}
}

func (r *MemoryRepo) Put(a Appointment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[a.WorkspaceID+"|"+a.ID] = a
}

func (r *MemoryRepo) Get(ctx context.Context, workspaceID, appointmentID string) (Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.rows[workspaceID+"|"+appointmentID]
	if !ok {
		return Appointment{}, ErrNotFound
	}
	return a, nil
}
