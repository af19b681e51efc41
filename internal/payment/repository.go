package payment

import (
	"context"
	"database/sql"
	"errors"

	"cafe-pos/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	ListByOrder(ctx context.Context, orderID string) ([]Payment, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const uniqueViolation = "23505"

func (r *repository) Create(ctx context.Context, p *Payment) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreatePayment"),
		zap.String("order_id", p.OrderID),
	)

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO payments (
			id, order_id, amount, method, status, reference,
			customer_paid, change_amount, discount_amount, tax_amount
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`,
		p.ID, p.OrderID, p.Amount, p.Method, p.Status, p.Reference,
		p.CustomerPaid, p.ChangeAmount, p.DiscountAmount, p.TaxAmount,
	).Scan(&p.CreatedAt, &p.UpdatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		log.Warn("duplicate payment", zap.String("reference", p.Reference))
		return ErrDuplicatePayment
	}
	if err != nil {
		log.Error("insert failed", zap.Error(err))
		return err
	}
	return nil
}

func (r *repository) ListByOrder(ctx context.Context, orderID string) ([]Payment, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListPaymentsByOrder"),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, amount, method, status, reference,
		       customer_paid, change_amount, discount_amount, tax_amount,
		       created_at, updated_at
		FROM payments
		WHERE order_id = $1
		ORDER BY created_at DESC
	`, orderID)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var payments []Payment
	for rows.Next() {
		var (
			p            Payment
			customerPaid sql.NullInt64
			change       sql.NullInt64
		)
		if err := rows.Scan(
			&p.ID, &p.OrderID, &p.Amount, &p.Method, &p.Status, &p.Reference,
			&customerPaid, &change, &p.DiscountAmount, &p.TaxAmount,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		if customerPaid.Valid {
			p.CustomerPaid = &customerPaid.Int64
		}
		if change.Valid {
			p.ChangeAmount = &change.Int64
		}
		payments = append(payments, p)
	}

	return payments, rows.Err()
}
