package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/posk43/api-final-yatube/internal/audit"
	"github.com/posk43/api-final-yatube/internal/domain"
	"github.com/posk43/api-final-yatube/internal/repository"
	"github.com/posk43/api-final-yatube/pkg/log"
	"github.com/posk43/api-final-yatube/pkg/pubsub"
)

// followService implements FollowService. Every operation acts on behalf
// of the authenticated follower; other users' edges are invisible.
type followService struct {
	follows repository.FollowRepository
	users   repository.UserRepository
	events  pubsub.Publisher
}

// NewFollowService creates a new FollowService instance.
func NewFollowService(
	follows repository.FollowRepository,
	users repository.UserRepository,
	events pubsub.Publisher,
) FollowService {
	return &followService{
		follows: follows,
		users:   users,
		events:  events,
	}
}

// List returns the acting identity's follow edges, optionally filtered by
// a substring of the followed username.
func (s *followService) List(ctx context.Context, actor Identity, search string) ([]domain.Follow, error) {
	return s.follows.ListByFollower(ctx, actor.UserID, search)
}

// Create creates a follow edge from the acting identity to the named
// user. The pre-checks produce clean validation errors; the unique index
// and check constraint in storage remain the backstop under concurrency.
func (s *followService) Create(ctx context.Context, actor Identity, req *domain.CreateFollowRequest) (*domain.Follow, error) {
	if req.Following == actor.Username {
		return nil, ErrSelfFollow
	}

	following, err := s.users.GetByUsername(ctx, req.Following)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrFollowingNotFound
		}
		return nil, err
	}

	exists, err := s.follows.Exists(ctx, actor.UserID, following.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyFollowing
	}

	follow := &domain.Follow{
		FollowerID:        actor.UserID,
		FollowingID:       following.ID,
		FollowerUsername:  actor.Username,
		FollowingUsername: following.Username,
	}
	if err := s.follows.Create(ctx, follow); err != nil {
		if errors.Is(err, repository.ErrAlreadyFollowing) {
			// Lost the race; same answer as the pre-check.
			return nil, ErrAlreadyFollowing
		}
		log.Ctx(ctx).Error().Err(err).
			Str("follower_id", actor.UserID).
			Str("following_id", following.ID).
			Msg("failed to create follow")
		return nil, err
	}

	audit.LogWithDetail(ctx, audit.ActionFollowCreate, actor.UserID, fmt.Sprint(follow.ID), following.Username)
	publishEvent(ctx, s.events, pubsub.EntityFollow, pubsub.EventFollowCreated, follow.ID, actor.Username, follow.ToResponse())

	return follow, nil
}

// Get retrieves one of the acting identity's follow edges. Edges owned by
// other users are reported as not found.
func (s *followService) Get(ctx context.Context, actor Identity, id uint) (*domain.Follow, error) {
	follow, err := s.follows.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if follow.FollowerID != actor.UserID {
		return nil, repository.ErrFollowNotFound
	}
	return follow, nil
}

// Delete removes one of the acting identity's follow edges.
func (s *followService) Delete(ctx context.Context, actor Identity, id uint) error {
	follow, err := s.Get(ctx, actor, id)
	if err != nil {
		return err
	}

	if err := s.follows.Delete(ctx, id); err != nil {
		log.Ctx(ctx).Error().Err(err).Uint("follow_id", id).Msg("failed to delete follow")
		return err
	}

	audit.LogWithDetail(ctx, audit.ActionFollowDelete, actor.UserID, fmt.Sprint(id), follow.FollowingUsername)
	publishEvent(ctx, s.events, pubsub.EntityFollow, pubsub.EventFollowDeleted, id, actor.Username, nil)

	return nil
}

var _ FollowService = (*followService)(nil)
