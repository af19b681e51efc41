package table

import (
	"context"
	"sort"
	"sync"
)

type memoryRepository struct {
	mu     sync.RWMutex
	tables map[string]Table
}

// NewMemoryRepository keeps tables in process memory.
func NewMemoryRepository(tables ...Table) Repository {
	r := &memoryRepository{tables: make(map[string]Table, len(tables))}
	for _, t := range tables {
		r.tables[t.ID] = t
	}
	return r
}

func (r *memoryRepository) List(ctx context.Context) ([]Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Table, 0, len(r.tables))
	for _, t := range r.tables {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id string) (*Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tables[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}
