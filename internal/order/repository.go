package order

import (
	"context"
	"database/sql"
	"errors"

	"cafe-pos/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// Repository is the record store for orders and their lines. Lookups return
// (nil, nil) when nothing matches.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	Update(ctx context.Context, o *Order) error
	Delete(ctx context.Context, orderID string) error

	AddLine(ctx context.Context, l *Line) error
	UpdateLineQuantity(ctx context.Context, lineID string, quantity int) error
	RemoveLine(ctx context.Context, lineID string) error

	GetActiveByTable(ctx context.Context, tableID string) (*Order, error)
	ListActive(ctx context.Context) ([]Order, error)
	GetByID(ctx context.Context, orderID string) (*Order, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const (
	selectOrder = `
		SELECT id, table_id, status, total, discount, tax,
		       customer_name, customer_phone, notes, created_at, updated_at
		FROM orders`

	activeFilter = `status NOT IN ('completed', 'paid')`

	selectLines = `
		SELECT id, order_id, menu_item_id, name, price, quantity, notes, created_at
		FROM order_items`
)

func (r *repository) Create(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrder"),
		zap.String("table_id", o.TableID),
	)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO orders (
			id, table_id, status, total, discount, tax,
			customer_name, customer_phone, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		o.ID, o.TableID, o.Status, o.Total, o.Discount, o.Tax,
		o.CustomerName, o.CustomerPhone, o.Notes, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		log.Error("insert failed", zap.Error(err))
		return err
	}
	return nil
}

func (r *repository) Update(ctx context.Context, o *Order) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $2, total = $3, discount = $4, tax = $5,
		    customer_name = $6, customer_phone = $7, notes = $8, updated_at = $9
		WHERE id = $1
	`,
		o.ID, o.Status, o.Total, o.Discount, o.Tax,
		o.CustomerName, o.CustomerPhone, o.Notes, o.UpdatedAt,
	)
	if err != nil {
		logger.FromCtx(ctx).Error("update order failed",
			zap.String("layer", "repository"),
			zap.String("order_id", o.ID),
			zap.Error(err),
		)
		return err
	}
	return expectAffected(res, ErrOrderNotFound)
}

// Delete removes the order; its lines go with it through ON DELETE CASCADE.
func (r *repository) Delete(ctx context.Context, orderID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, orderID)
	if err != nil {
		return err
	}
	return expectAffected(res, ErrOrderNotFound)
}

func (r *repository) AddLine(ctx context.Context, l *Line) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO order_items (
			id, order_id, menu_item_id, name, price, quantity, notes, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		l.ID, l.OrderID, l.MenuItemID, l.Name, l.Price, l.Quantity, l.Notes, l.CreatedAt,
	)
	if err != nil {
		logger.FromCtx(ctx).Error("insert line failed",
			zap.String("layer", "repository"),
			zap.String("order_id", l.OrderID),
			zap.Error(err),
		)
	}
	return err
}

func (r *repository) UpdateLineQuantity(ctx context.Context, lineID string, quantity int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE order_items SET quantity = $2 WHERE id = $1`, lineID, quantity)
	if err != nil {
		return err
	}
	return expectAffected(res, ErrLineNotFound)
}

func (r *repository) RemoveLine(ctx context.Context, lineID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM order_items WHERE id = $1`, lineID)
	if err != nil {
		return err
	}
	return expectAffected(res, ErrLineNotFound)
}

func (r *repository) GetActiveByTable(ctx context.Context, tableID string) (*Order, error) {
	return r.getOne(ctx, selectOrder+` WHERE table_id = $1 AND `+activeFilter+`
		ORDER BY created_at DESC LIMIT 1`, tableID)
}

func (r *repository) GetByID(ctx context.Context, orderID string) (*Order, error) {
	return r.getOne(ctx, selectOrder+` WHERE id = $1`, orderID)
}

func (r *repository) getOne(ctx context.Context, query string, arg string) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	lines, err := r.linesFor(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Lines = lines[o.ID]
	return &o, nil
}

// ListActive returns every non-terminal order, oldest first, with lines
// attached in insertion order.
func (r *repository) ListActive(ctx context.Context) ([]Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListActive"),
	)

	rows, err := r.db.QueryContext(ctx, selectOrder+` WHERE `+activeFilter+` ORDER BY created_at`)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var (
		orders []Order
		ids    []string
	)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, nil
	}

	lines, err := r.linesFor(ctx, ids)
	if err != nil {
		log.Error("failed to load lines", zap.Error(err))
		return nil, err
	}
	for i := range orders {
		orders[i].Lines = lines[orders[i].ID]
	}
	return orders, nil
}

func (r *repository) linesFor(ctx context.Context, orderIDs []string) (map[string][]Line, error) {
	rows, err := r.db.QueryContext(ctx,
		selectLines+` WHERE order_id = ANY($1) ORDER BY seq`, pq.Array(orderIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]Line, len(orderIDs))
	for rows.Next() {
		var (
			l     Line
			notes sql.NullString
		)
		if err := rows.Scan(&l.ID, &l.OrderID, &l.MenuItemID, &l.Name, &l.Price, &l.Quantity, &notes, &l.CreatedAt); err != nil {
			return nil, err
		}
		if notes.Valid {
			l.Notes = &notes.String
		}
		out[l.OrderID] = append(out[l.OrderID], l)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(s scanner) (Order, error) {
	var (
		o                  Order
		discount, tax      sql.NullInt64
		name, phone, notes sql.NullString
	)
	err := s.Scan(
		&o.ID, &o.TableID, &o.Status, &o.Total, &discount, &tax,
		&name, &phone, &notes, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return Order{}, err
	}
	if discount.Valid {
		o.Discount = &discount.Int64
	}
	if tax.Valid {
		o.Tax = &tax.Int64
	}
	if name.Valid {
		o.CustomerName = &name.String
	}
	if phone.Valid {
		o.CustomerPhone = &phone.String
	}
	if notes.Valid {
		o.Notes = &notes.String
	}
	return o, nil
}

func expectAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
