package order

import (
	"context"
	"sync"
	"time"

	"cafe-pos/internal/apperr"
	"cafe-pos/internal/logger"
	"cafe-pos/internal/notify"
	"cafe-pos/internal/payment"
	"cafe-pos/internal/table"
	"cafe-pos/internal/utils"

	"go.uber.org/zap"
)

// Service owns the table id → active order mapping. It is the only writer of
// order and line records.
type Service interface {
	AddItem(ctx context.Context, tableID string, c Candidate) (*Order, error)
	// UpdateItemQuantity sets a line's quantity. A quantity of zero or less
	// removes the line; removing the last line deletes the order and returns nil.
	UpdateItemQuantity(ctx context.Context, tableID, lineID string, quantity int) (*Order, error)
	RemoveItem(ctx context.Context, tableID, lineID string) (*Order, error)
	ClearOrder(ctx context.Context, tableID string) error
	UpdateStatus(ctx context.Context, tableID string, status Status) (*Order, error)
	CompleteWithPayment(ctx context.Context, tableID string, p *payment.Payment, c Customer) (*Order, error)

	ActiveOrder(ctx context.Context, tableID string) (*Order, error)
	Refresh(ctx context.Context) (*ActiveOrders, error)
	View() *ActiveOrders
}

type service struct {
	repo     Repository
	tables   table.Repository
	payments payment.Repository
	notifier notify.Notifier

	mu     sync.RWMutex
	active map[string]*Order

	newID func() string
	now   func() time.Time
}

func NewService(
	repo Repository,
	tables table.Repository,
	payments payment.Repository,
	notifier notify.Notifier,
) Service {
	if notifier == nil {
		notifier = notify.NewNopNotifier()
	}
	return &service{
		repo:     repo,
		tables:   tables,
		payments: payments,
		notifier: notifier,
		active:   make(map[string]*Order),
		newID:    utils.NewID,
		now:      time.Now,
	}
}

func (s *service) AddItem(ctx context.Context, tableID string, c Candidate) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddItem"),
		zap.String("table_id", tableID),
		zap.String("menu_item_id", c.MenuItemID),
	)

	if err := s.requireTable(ctx, tableID); err != nil {
		return nil, err
	}
	if err := validateCandidate(c); err != nil {
		return nil, err
	}

	o, err := s.repo.GetActiveByTable(ctx, tableID)
	if err != nil {
		log.Error("failed to load active order", zap.Error(err))
		return nil, apperr.Storage("get active order", err)
	}

	now := s.now()
	if o == nil {
		o, err = s.openOrder(ctx, tableID, c, now)
		if err != nil {
			log.Error("failed to open order", zap.Error(err))
			return nil, err
		}
		s.cache(o)
		s.publish(ctx, notify.EventOrderCreated, o)
		log.Info("order opened", zap.String("order_id", o.ID))
		return o.clone(), nil
	}

	if i := o.mergeTarget(c.MenuItemID, c.Price); i >= 0 {
		qty := o.Lines[i].Quantity + c.Quantity
		if err := s.repo.UpdateLineQuantity(ctx, o.Lines[i].ID, qty); err != nil {
			log.Error("failed to merge line", zap.Error(err))
			return nil, apperr.Storage("update line quantity", err)
		}
		o.Lines[i].Quantity = qty
	} else {
		line := s.newLine(o.ID, c, now)
		if err := s.repo.AddLine(ctx, &line); err != nil {
			log.Error("failed to add line", zap.Error(err))
			return nil, apperr.Storage("add line", err)
		}
		o.Lines = append(o.Lines, line)
	}

	if err := s.saveTotals(ctx, o, now); err != nil {
		log.Error("failed to update order total", zap.Error(err))
		return nil, err
	}

	s.cache(o)
	return o.clone(), nil
}

func (s *service) openOrder(ctx context.Context, tableID string, c Candidate, now time.Time) (*Order, error) {
	o := &Order{
		ID:        s.newID(),
		TableID:   tableID,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	line := s.newLine(o.ID, c, now)
	o.Lines = []Line{line}
	o.recomputeTotal()

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, apperr.Storage("create order", err)
	}
	if err := s.repo.AddLine(ctx, &line); err != nil {
		return nil, apperr.Storage("add line", err)
	}
	return o, nil
}

func (s *service) newLine(orderID string, c Candidate, now time.Time) Line {
	return Line{
		ID:         s.newID(),
		OrderID:    orderID,
		MenuItemID: c.MenuItemID,
		Name:       c.Name,
		Price:      c.Price,
		Quantity:   c.Quantity,
		Notes:      utils.OptionalStr(c.Notes),
		CreatedAt:  now,
	}
}

func (s *service) UpdateItemQuantity(ctx context.Context, tableID, lineID string, quantity int) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateItemQuantity"),
		zap.String("table_id", tableID),
		zap.String("line_id", lineID),
	)

	o, err := s.loadActive(ctx, tableID)
	if err != nil {
		return nil, err
	}

	i := o.lineIndex(lineID)
	if i < 0 {
		return nil, ErrLineNotFound
	}

	if quantity <= 0 {
		if len(o.Lines) == 1 {
			if err := s.repo.Delete(ctx, o.ID); err != nil {
				log.Error("failed to delete emptied order", zap.Error(err))
				return nil, apperr.Storage("delete order", err)
			}
			s.evict(tableID)
			s.publish(ctx, notify.EventOrderCleared, o)
			log.Info("last line removed, order deleted", zap.String("order_id", o.ID))
			return nil, nil
		}
		if err := s.repo.RemoveLine(ctx, lineID); err != nil {
			log.Error("failed to remove line", zap.Error(err))
			return nil, apperr.Storage("remove line", err)
		}
		o.Lines = append(o.Lines[:i], o.Lines[i+1:]...)
	} else {
		if err := s.repo.UpdateLineQuantity(ctx, lineID, quantity); err != nil {
			log.Error("failed to set quantity", zap.Error(err))
			return nil, apperr.Storage("update line quantity", err)
		}
		o.Lines[i].Quantity = quantity
	}

	if err := s.saveTotals(ctx, o, s.now()); err != nil {
		log.Error("failed to update order total", zap.Error(err))
		return nil, err
	}

	s.cache(o)
	return o.clone(), nil
}

func (s *service) RemoveItem(ctx context.Context, tableID, lineID string) (*Order, error) {
	return s.UpdateItemQuantity(ctx, tableID, lineID, 0)
}

// ClearOrder deletes the table's active order. Without one it does nothing.
func (s *service) ClearOrder(ctx context.Context, tableID string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ClearOrder"),
		zap.String("table_id", tableID),
	)

	o, err := s.repo.GetActiveByTable(ctx, tableID)
	if err != nil {
		log.Error("failed to load active order", zap.Error(err))
		return apperr.Storage("get active order", err)
	}
	if o == nil {
		s.evict(tableID)
		return nil
	}

	if err := s.repo.Delete(ctx, o.ID); err != nil {
		log.Error("failed to delete order", zap.Error(err))
		return apperr.Storage("delete order", err)
	}

	s.evict(tableID)
	s.publish(ctx, notify.EventOrderCleared, o)
	log.Info("order cleared", zap.String("order_id", o.ID))
	return nil
}

// UpdateStatus moves the order along pending → confirmed → preparing → ready.
// Regressions are allowed. Terminal statuses are only reached through checkout.
func (s *service) UpdateStatus(ctx context.Context, tableID string, status Status) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateStatus"),
		zap.String("table_id", tableID),
		zap.String("status", string(status)),
	)

	if !status.IsValid() {
		return nil, apperr.Invalid("status", "unknown status "+string(status))
	}
	if status.IsTerminal() {
		log.Warn("direct completion rejected")
		return nil, ErrPaymentRequired
	}

	o, err := s.loadActive(ctx, tableID)
	if err != nil {
		return nil, err
	}

	o.Status = status
	o.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, o); err != nil {
		log.Error("failed to update status", zap.Error(err))
		return nil, apperr.Storage("update order status", err)
	}

	s.cache(o)
	s.publish(ctx, notify.EventStatusChanged, o)
	return o.clone(), nil
}

// CompleteWithPayment closes the table's order after checkout has recorded p.
// The payment must already be stored and reference the active order.
func (s *service) CompleteWithPayment(ctx context.Context, tableID string, p *payment.Payment, c Customer) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CompleteWithPayment"),
		zap.String("table_id", tableID),
	)

	if p == nil || p.ID == "" {
		return nil, apperr.Invalid("payment", "payment is required")
	}
	if p.Status != payment.StatusCompleted {
		return nil, apperr.Invalid("payment", "payment is not completed")
	}

	o, err := s.loadActive(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if p.OrderID != o.ID {
		return nil, apperr.Invalid("payment", "payment does not belong to the active order")
	}
	if err := s.requirePersisted(ctx, p); err != nil {
		return nil, err
	}

	o.Status = StatusCompleted
	o.Discount = utils.Int64Ptr(p.DiscountAmount)
	o.Tax = utils.Int64Ptr(p.TaxAmount)
	o.CustomerName = utils.OptionalStr(c.Name)
	o.CustomerPhone = utils.OptionalStr(c.Phone)
	o.Notes = utils.OptionalStr(c.Notes)
	o.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, o); err != nil {
		log.Error("failed to complete order", zap.String("payment_id", p.ID), zap.Error(err))
		return nil, apperr.Storage("complete order", err)
	}

	s.evict(tableID)
	s.publish(ctx, notify.EventOrderPaid, o)
	log.Info("order completed", zap.String("order_id", o.ID), zap.String("reference", p.Reference))

	// return what the store now holds, lines included
	stored, err := s.repo.GetByID(ctx, o.ID)
	if err != nil {
		log.Error("failed to reload completed order", zap.String("order_id", o.ID), zap.Error(err))
		return nil, apperr.Storage("reload completed order", err)
	}
	if stored == nil {
		return nil, ErrOrderNotFound
	}
	return stored, nil
}

func (s *service) requirePersisted(ctx context.Context, p *payment.Payment) error {
	stored, err := s.payments.ListByOrder(ctx, p.OrderID)
	if err != nil {
		return apperr.Storage("list payments", err)
	}
	for _, sp := range stored {
		if sp.ID == p.ID {
			return nil
		}
	}
	return apperr.Invalid("payment", "payment has not been recorded")
}

func (s *service) ActiveOrder(ctx context.Context, tableID string) (*Order, error) {
	o, err := s.loadActive(ctx, tableID)
	if err != nil {
		return nil, err
	}
	s.cache(o)
	return o.clone(), nil
}

// Refresh rebuilds the projection from the store.
func (s *service) Refresh(ctx context.Context) (*ActiveOrders, error) {
	orders, err := s.repo.ListActive(ctx)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to list active orders",
			zap.String("layer", "service"),
			zap.Error(err),
		)
		return nil, apperr.Storage("list active orders", err)
	}

	byTable := make(map[string]*Order, len(orders))
	for i := range orders {
		// oldest first, so a newer order for the same table wins
		byTable[orders[i].TableID] = &orders[i]
	}

	s.mu.Lock()
	s.active = byTable
	view := newActiveOrders(s.active)
	s.mu.Unlock()

	logger.FromCtx(ctx).Info("active orders refreshed",
		zap.String("layer", "service"),
		zap.Int("active", view.Len()),
	)
	return view, nil
}

func (s *service) View() *ActiveOrders {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return newActiveOrders(s.active)
}

func (s *service) requireTable(ctx context.Context, tableID string) error {
	if tableID == "" {
		return ErrTableNotFound
	}
	t, err := s.tables.GetByID(ctx, tableID)
	if err != nil {
		return apperr.Storage("get table", err)
	}
	if t == nil {
		return ErrTableNotFound
	}
	return nil
}

func (s *service) loadActive(ctx context.Context, tableID string) (*Order, error) {
	if tableID == "" {
		return nil, ErrOrderNotFound
	}
	o, err := s.repo.GetActiveByTable(ctx, tableID)
	if err != nil {
		return nil, apperr.Storage("get active order", err)
	}
	if o == nil {
		s.evict(tableID)
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func (s *service) saveTotals(ctx context.Context, o *Order, now time.Time) error {
	o.recomputeTotal()
	o.UpdatedAt = now
	if err := s.repo.Update(ctx, o); err != nil {
		return apperr.Storage("update order total", err)
	}
	return nil
}

func (s *service) cache(o *Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active[o.TableID] = o.clone()
}

func (s *service) evict(tableID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.active, tableID)
}

// publish never fails the caller; the order change is already stored.
func (s *service) publish(ctx context.Context, t notify.EventType, o *Order) {
	err := s.notifier.Publish(ctx, notify.Event{
		Type:       t,
		OrderID:    o.ID,
		TableID:    o.TableID,
		Status:     string(o.Status),
		Total:      o.Total,
		ItemCount:  o.ItemCount(),
		OccurredAt: s.now(),
	})
	if err != nil {
		logger.FromCtx(ctx).Warn("kitchen notification failed",
			zap.String("order_id", o.ID),
			zap.String("event", string(t)),
			zap.Error(err),
		)
	}
}

func validateCandidate(c Candidate) error {
	switch {
	case c.MenuItemID == "":
		return apperr.Invalid("menu_item_id", "is required")
	case c.Price < 0:
		return apperr.Invalid("price", "must not be negative")
	case c.Quantity <= 0:
		return apperr.Invalid("quantity", "must be positive")
	}
	return nil
}
