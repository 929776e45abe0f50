package history

import (
	"context"
	"sync"
)

// MemoryRepo is a simple in-memory repository useful for tests.
// It is not intended for production use.

type MemoryRepo struct {
	mu   sync.Mutex
	rows []CallRecord
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{} }

func (r *MemoryRepo) Append(ctx context.Context, rec CallRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, rec)
	return nil
}

func (r *MemoryRepo) List(ctx context.Context, workspaceID string, tr TimeRange) ([]CallRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []CallRecord
	for _, rec := range r.rows {
		if rec.WorkspaceID != workspaceID {
			continue
		}
		if rec.EndedAt.Before(tr.From) || rec.EndedAt.After(tr.To) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// All returns every stored record; test convenience.
func (r *MemoryRepo) All() []CallRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]CallRecord, len(r.rows))
	copy(out, r.rows)
	return out
}
