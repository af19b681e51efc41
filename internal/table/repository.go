package table

import (
	"context"
	"database/sql"
	"errors"

	"cafe-pos/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context) ([]Table, error)
	GetByID(ctx context.Context, id string) (*Table, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const selectColumns = `
	SELECT id, name, type, status, capacity, floor, created_at, updated_at
	FROM tables`

func (r *repository) List(ctx context.Context) ([]Table, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListTables"),
	)

	rows, err := r.db.QueryContext(ctx, selectColumns+` ORDER BY name`)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var tables []Table
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		tables = append(tables, t)
	}

	return tables, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id string) (*Table, error) {
	row := r.db.QueryRowContext(ctx, selectColumns+` WHERE id = $1`, id)

	t, err := scanTable(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTable(s scanner) (Table, error) {
	var (
		t        Table
		capacity sql.NullInt64
		floor    sql.NullString
	)
	err := s.Scan(&t.ID, &t.Name, &t.Type, &t.Status, &capacity, &floor, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return Table{}, err
	}
	if capacity.Valid {
		c := int(capacity.Int64)
		t.Capacity = &c
	}
	if floor.Valid {
		t.Floor = &floor.String
	}
	return t, nil
}
