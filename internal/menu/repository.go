package menu

import (
	"context"
	"database/sql"
	"errors"

	"cafe-pos/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	ListAvailable(ctx context.Context) ([]MenuItem, error)
	ListByCategory(ctx context.Context, category Category) ([]MenuItem, error)
	GetByID(ctx context.Context, id string) (*MenuItem, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const selectColumns = `
	SELECT id, name, price, category, available, description, created_at, updated_at
	FROM menu_items`

func (r *repository) ListAvailable(ctx context.Context) ([]MenuItem, error) {
	return r.list(ctx, "ListAvailable", selectColumns+` WHERE available = true ORDER BY category, name`)
}

func (r *repository) ListByCategory(ctx context.Context, category Category) ([]MenuItem, error) {
	return r.list(ctx, "ListByCategory",
		selectColumns+` WHERE available = true AND category = $1 ORDER BY name`, string(category))
}

func (r *repository) list(ctx context.Context, method, query string, args ...any) ([]MenuItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", method),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var items []MenuItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id string) (*MenuItem, error) {
	item, err := scanItem(r.db.QueryRowContext(ctx, selectColumns+` WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (MenuItem, error) {
	var (
		m    MenuItem
		desc sql.NullString
	)
	if err := s.Scan(&m.ID, &m.Name, &m.Price, &m.Category, &m.Available, &desc, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return MenuItem{}, err
	}
	if desc.Valid {
		m.Description = &desc.String
	}
	return m, nil
}
