package cache

import (
	"context"
	"errors"

	"github.com/posk43/api-final-yatube/internal/domain"
)

var ErrCacheMiss = errors.New("cache miss")

// GroupCache caches the read-only group catalog.
type GroupCache interface {
	GetList(ctx context.Context) ([]domain.Group, error)
	SetList(ctx context.Context, groups []domain.Group) error
	GetByID(ctx context.Context, id uint) (*domain.Group, error)
	SetByID(ctx context.Context, group *domain.Group) error
}
