package payment

import (
	"context"
	"sort"
	"sync"
	"time"
)

type memoryRepository struct {
	mu       sync.RWMutex
	payments map[string]Payment
	now      func() time.Time
}

func NewMemoryRepository() Repository {
	return &memoryRepository{
		payments: make(map[string]Payment),
		now:      time.Now,
	}
}

func (r *memoryRepository) Create(ctx context.Context, p *Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.payments[p.ID]; exists {
		return ErrDuplicatePayment
	}
	for _, existing := range r.payments {
		if existing.Reference == p.Reference {
			return ErrDuplicatePayment
		}
	}

	now := r.now()
	p.CreatedAt = now
	p.UpdatedAt = now
	r.payments[p.ID] = clonePayment(*p)
	return nil
}

func (r *memoryRepository) ListByOrder(ctx context.Context, orderID string) ([]Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Payment
	for _, p := range r.payments {
		if p.OrderID == orderID {
			out = append(out, clonePayment(p))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func clonePayment(p Payment) Payment {
	if p.CustomerPaid != nil {
		v := *p.CustomerPaid
		p.CustomerPaid = &v
	}
	if p.ChangeAmount != nil {
		v := *p.ChangeAmount
		p.ChangeAmount = &v
	}
	return p
}
