package menu

import (
	"context"

	"cafe-pos/internal/apperr"
	"cafe-pos/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, category string) ([]MenuItem, error)
	Get(ctx context.Context, id string) (*MenuItem, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// List returns available items, optionally narrowed to one category.
func (s *service) List(ctx context.Context, category string) ([]MenuItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ListMenu"),
		zap.String("category", category),
	)

	if category == "" {
		items, err := s.repo.ListAvailable(ctx)
		if err != nil {
			log.Error("failed to list menu", zap.Error(err))
			return nil, apperr.Storage("list menu", err)
		}
		return items, nil
	}

	c := Category(category)
	if !c.IsValid() {
		return nil, apperr.Invalid("category", "unknown category "+category)
	}

	items, err := s.repo.ListByCategory(ctx, c)
	if err != nil {
		log.Error("failed to list menu category", zap.Error(err))
		return nil, apperr.Storage("list menu", err)
	}
	return items, nil
}

func (s *service) Get(ctx context.Context, id string) (*MenuItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Storage("get menu item", err)
	}
	if item == nil {
		return nil, ErrMenuItemNotFound
	}
	return item, nil
}
