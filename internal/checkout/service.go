package checkout

import (
	"context"
	"errors"
	"time"

	"cafe-pos/internal/apperr"
	"cafe-pos/internal/logger"
	"cafe-pos/internal/metrics"
	"cafe-pos/internal/money"
	"cafe-pos/internal/order"
	"cafe-pos/internal/payment"
	"cafe-pos/internal/utils"

	"go.uber.org/zap"
)

const (
	MetricPaymentsCompleted = "payments_completed"
	MetricPaymentsRejected  = "payments_rejected"
	MetricPaymentsFailed    = "payments_failed"
	MetricRevenue           = "revenue_vnd"
)

type Service interface {
	Quote(ctx context.Context, tableID string, in Input) (*Settlement, error)
	Pay(ctx context.Context, tableID string, in Input) (*Receipt, error)
	Payments(ctx context.Context, orderID string) ([]payment.Payment, error)
}

type service struct {
	orders   order.Service
	payments payment.Repository
	metrics  *metrics.Registry

	newID func() string
	now   func() time.Time
}

func NewService(orders order.Service, payments payment.Repository, registry *metrics.Registry) Service {
	if registry == nil {
		registry = metrics.NewRegistry()
	}
	return &service{
		orders:   orders,
		payments: payments,
		metrics:  registry,
		newID:    utils.NewID,
		now:      time.Now,
	}
}

// Quote previews the settlement without writing anything.
func (s *service) Quote(ctx context.Context, tableID string, in Input) (*Settlement, error) {
	o, err := s.orders.ActiveOrder(ctx, tableID)
	if err != nil {
		return nil, err
	}
	return Calculate(o, in)
}

// Pay settles the table's active order. The payment is written before the
// order is completed; if completion fails the payment stays recorded and the
// error is returned for the caller to reconcile.
func (s *service) Pay(ctx context.Context, tableID string, in Input) (*Receipt, error) {
	timer := metrics.StartTimer()
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Pay"),
		zap.String("table_id", tableID),
		zap.String("payment_method", string(in.Method)),
	)

	o, err := s.orders.ActiveOrder(ctx, tableID)
	if err != nil {
		return nil, err
	}

	st, err := Calculate(o, in)
	if err != nil {
		if errors.Is(err, apperr.ErrInsufficientPayment) {
			s.metrics.Counter(MetricPaymentsRejected).Inc()
			log.Warn("insufficient cash", zap.Int64("tendered", in.Tendered))
		}
		return nil, err
	}

	p := s.newPayment(o, st)
	if err := s.payments.Create(ctx, p); err != nil {
		s.metrics.Counter(MetricPaymentsFailed).Inc()
		log.Error("failed to record payment", zap.String("order_id", o.ID), zap.Error(err))
		return nil, apperr.Storage("create payment", err)
	}

	done, err := s.orders.CompleteWithPayment(ctx, tableID, p, order.Customer{
		Name:  in.CustomerName,
		Phone: in.CustomerPhone,
		Notes: in.Notes,
	})
	if err != nil {
		s.metrics.Counter(MetricPaymentsFailed).Inc()
		log.Error("payment recorded but order not completed",
			zap.String("order_id", o.ID),
			zap.String("payment_id", p.ID),
			zap.Error(err),
		)
		return nil, err
	}

	s.metrics.Counter(MetricPaymentsCompleted).Inc()
	if st.Amount > 0 {
		s.metrics.Counter(MetricRevenue).Add(uint64(st.Amount))
	}
	log.Info("checkout completed",
		zap.String("order_id", o.ID),
		zap.String("reference", p.Reference),
		zap.Int64("amount", st.Amount),
		zap.Duration("duration", timer.Duration()),
	)

	return &Receipt{
		Settlement:   st,
		Payment:      p,
		Order:        done,
		Instructions: instructionsFor(p),
	}, nil
}

func (s *service) newPayment(o *order.Order, st *Settlement) *payment.Payment {
	p := &payment.Payment{
		ID:             s.newID(),
		OrderID:        o.ID,
		Amount:         st.Amount,
		Method:         st.Method,
		Status:         payment.StatusCompleted,
		Reference:      utils.GeneratePaymentReference(s.now()),
		DiscountAmount: st.DiscountAmount,
		TaxAmount:      st.Tax,
	}
	if st.Method == payment.MethodCash {
		p.CustomerPaid = utils.Int64Ptr(st.Tendered)
		p.ChangeAmount = utils.Int64Ptr(st.Change)
	}
	return p
}

func (s *service) Payments(ctx context.Context, orderID string) ([]payment.Payment, error) {
	if orderID == "" {
		return nil, apperr.Invalid("order_id", "is required")
	}
	payments, err := s.payments.ListByOrder(ctx, orderID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to list payments",
			zap.String("layer", "service"),
			zap.String("order_id", orderID),
			zap.Error(err),
		)
		return nil, apperr.Storage("list payments", err)
	}
	if payments == nil {
		payments = []payment.Payment{}
	}
	return payments, nil
}

func instructionsFor(p *payment.Payment) []string {
	vars := payment.InstructionVars{
		"amount":    money.FormatVND(p.Amount),
		"reference": p.Reference,
	}
	if p.CustomerPaid != nil {
		vars["customer_paid"] = money.FormatVND(*p.CustomerPaid)
	}
	if p.ChangeAmount != nil {
		vars["change"] = money.FormatVND(*p.ChangeAmount)
	}
	return payment.InjectVariables(payment.GetInstructions(p.Method), vars)
}
