package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/posk43/api-final-yatube/internal/cache"
	"github.com/posk43/api-final-yatube/internal/domain"
	"github.com/posk43/api-final-yatube/internal/repository"
	"github.com/posk43/api-final-yatube/pkg/log"
)

// groupService implements GroupService with a Redis read-through cache.
// The catalog is small and read-mostly, so misses are collapsed with
// singleflight and the reconciler keeps the cache warm.
type groupService struct {
	groups repository.GroupRepository
	cache  cache.GroupCache
	sf     singleflight.Group
}

// NewGroupService creates a new GroupService instance. cache may be nil,
// in which case every read goes to the database.
func NewGroupService(groups repository.GroupRepository, groupCache cache.GroupCache) GroupService {
	return &groupService{
		groups: groups,
		cache:  groupCache,
	}
}

// List returns all groups, preferring the cache.
func (s *groupService) List(ctx context.Context) ([]domain.Group, error) {
	if s.cache == nil {
		return s.groups.List(ctx)
	}

	result, err, _ := s.sf.Do("groups:list", func() (interface{}, error) {
		cached, err := s.cache.GetList(ctx)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Ctx(ctx).Warn().Err(err).Msg("group cache get failed, falling back to db")
		}

		groups, err := s.groups.List(ctx)
		if err != nil {
			return nil, err
		}

		if err := s.cache.SetList(ctx, groups); err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("failed to populate group cache")
		}
		return groups, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]domain.Group), nil
}

// Get returns a single group, preferring the cache.
func (s *groupService) Get(ctx context.Context, id uint) (*domain.Group, error) {
	if s.cache == nil {
		return s.groups.GetByID(ctx, id)
	}

	result, err, _ := s.sf.Do(fmt.Sprintf("groups:id:%d", id), func() (interface{}, error) {
		cached, err := s.cache.GetByID(ctx, id)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Ctx(ctx).Warn().Err(err).Uint("group_id", id).Msg("group cache get failed, falling back to db")
		}

		group, err := s.groups.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		if err := s.cache.SetByID(ctx, group); err != nil {
			log.Ctx(ctx).Warn().Err(err).Uint("group_id", id).Msg("failed to populate group cache")
		}
		return group, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*domain.Group), nil
}

// Refresh reloads the catalog into the cache. Called by the reconciler;
// a nil cache makes it a no-op.
func (s *groupService) Refresh(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}

	groups, err := s.groups.List(ctx)
	if err != nil {
		return err
	}

	if err := s.cache.SetList(ctx, groups); err != nil {
		return err
	}
	for i := range groups {
		if err := s.cache.SetByID(ctx, &groups[i]); err != nil {
			return err
		}
	}
	return nil
}

var _ GroupService = (*groupService)(nil)
