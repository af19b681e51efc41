package order

import (
	"context"
	"sort"
	"sync"
)

type memoryRepository struct {
	mu     sync.RWMutex
	orders map[string]*Order
}

// NewMemoryRepository keeps orders in process memory. Reads return deep
// copies so callers never alias stored state.
func NewMemoryRepository() Repository {
	return &memoryRepository{orders: make(map[string]*Order)}
}

func (r *memoryRepository) Create(ctx context.Context, o *Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := o.clone()
	stored.Lines = nil
	r.orders[o.ID] = stored
	return nil
}

func (r *memoryRepository) Update(ctx context.Context, o *Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.orders[o.ID]
	if !ok {
		return ErrOrderNotFound
	}
	lines := stored.Lines
	updated := o.clone()
	updated.Lines = lines
	updated.TableID = stored.TableID
	updated.CreatedAt = stored.CreatedAt
	r.orders[o.ID] = updated
	return nil
}

func (r *memoryRepository) Delete(ctx context.Context, orderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[orderID]; !ok {
		return ErrOrderNotFound
	}
	delete(r.orders, orderID)
	return nil
}

func (r *memoryRepository) AddLine(ctx context.Context, l *Line) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.orders[l.OrderID]
	if !ok {
		return ErrOrderNotFound
	}
	line := *l
	line.Notes = cloneString(l.Notes)
	stored.Lines = append(stored.Lines, line)
	return nil
}

func (r *memoryRepository) UpdateLineQuantity(ctx context.Context, lineID string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, i := r.findLine(lineID)
	if o == nil {
		return ErrLineNotFound
	}
	o.Lines[i].Quantity = quantity
	return nil
}

func (r *memoryRepository) RemoveLine(ctx context.Context, lineID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, i := r.findLine(lineID)
	if o == nil {
		return ErrLineNotFound
	}
	o.Lines = append(o.Lines[:i], o.Lines[i+1:]...)
	return nil
}

func (r *memoryRepository) GetActiveByTable(ctx context.Context, tableID string) (*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *Order
	for _, o := range r.orders {
		if o.TableID != tableID || o.Status.IsTerminal() {
			continue
		}
		if latest == nil || o.CreatedAt.After(latest.CreatedAt) {
			latest = o
		}
	}
	return latest.clone(), nil
}

func (r *memoryRepository) ListActive(ctx context.Context) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Order
	for _, o := range r.orders {
		if !o.Status.IsTerminal() {
			out = append(out, *o.clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memoryRepository) GetByID(ctx context.Context, orderID string) (*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[orderID]
	if !ok {
		return nil, nil
	}
	return o.clone(), nil
}

func (r *memoryRepository) findLine(lineID string) (*Order, int) {
	for _, o := range r.orders {
		if i := o.lineIndex(lineID); i >= 0 {
			return o, i
		}
	}
	return nil, -1
}
