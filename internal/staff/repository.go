package staff

import (
	"context"
	"database/sql"
	"errors"

	"cafe-pos/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	FindByUsername(ctx context.Context, username string) (*Staff, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByUsername(ctx context.Context, username string) (*Staff, error) {
	var s Staff
	err := r.db.QueryRowContext(ctx, `
		SELECT id, username, name, role, pin_hash, active, created_at
		FROM staff
		WHERE username = $1
	`, username).Scan(&s.ID, &s.Username, &s.Name, &s.Role, &s.PINHash, &s.Active, &s.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to load staff",
			zap.String("layer", "repository"),
			zap.String("method", "FindByUsername"),
			zap.Error(err),
		)
		return nil, err
	}
	return &s, nil
}

type memoryRepository struct {
	byUsername map[string]Staff
}

// NewMemoryRepository serves a fixed set of accounts.
func NewMemoryRepository(accounts ...Staff) Repository {
	r := &memoryRepository{byUsername: make(map[string]Staff, len(accounts))}
	for _, s := range accounts {
		r.byUsername[s.Username] = s
	}
	return r
}

func (r *memoryRepository) FindByUsername(ctx context.Context, username string) (*Staff, error) {
	s, ok := r.byUsername[username]
	if !ok {
		return nil, nil
	}
	return &s, nil
}
