package menu

import (
	"context"
	"sort"
	"sync"
)

type memoryRepository struct {
	mu    sync.RWMutex
	items map[string]MenuItem
}

func NewMemoryRepository(items ...MenuItem) Repository {
	r := &memoryRepository{items: make(map[string]MenuItem, len(items))}
	for _, m := range items {
		r.items[m.ID] = m
	}
	return r
}

func (r *memoryRepository) ListAvailable(ctx context.Context) ([]MenuItem, error) {
	return r.filter(func(m MenuItem) bool { return m.Available }), nil
}

func (r *memoryRepository) ListByCategory(ctx context.Context, category Category) ([]MenuItem, error) {
	return r.filter(func(m MenuItem) bool { return m.Available && m.Category == category }), nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id string) (*MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *memoryRepository) filter(keep func(MenuItem) bool) []MenuItem {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []MenuItem
	for _, m := range r.items {
		if keep(m) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out
}
