package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/posk43/api-final-yatube/internal/domain"
	"github.com/posk43/api-final-yatube/internal/repository"
)

var alice = Identity{UserID: "user-1", Username: "alice"}

func newFollowFixture() (*repository.MockFollowRepository, *repository.MockUserRepository, FollowService) {
	follows := new(repository.MockFollowRepository)
	users := new(repository.MockUserRepository)
	return follows, users, NewFollowService(follows, users, nil)
}

func TestFollowCreateRejectsSelfFollow(t *testing.T) {
	follows, users, svc := newFollowFixture()

	_, err := svc.Create(context.Background(), alice, &domain.CreateFollowRequest{Following: "alice"})

	assert.ErrorIs(t, err, ErrSelfFollow)
	follows.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	users.AssertNotCalled(t, "GetByUsername", mock.Anything, mock.Anything)
}

func TestFollowCreateRejectsUnknownUser(t *testing.T) {
	_, users, svc := newFollowFixture()
	users.On("GetByUsername", mock.Anything, "ghost").Return(nil, repository.ErrUserNotFound)

	_, err := svc.Create(context.Background(), alice, &domain.CreateFollowRequest{Following: "ghost"})

	assert.ErrorIs(t, err, ErrFollowingNotFound)
}

func TestFollowCreateRejectsDuplicate(t *testing.T) {
	follows, users, svc := newFollowFixture()
	users.On("GetByUsername", mock.Anything, "bob").Return(&domain.User{ID: "user-2", Username: "bob"}, nil)
	follows.On("Exists", mock.Anything, "user-1", "user-2").Return(true, nil)

	_, err := svc.Create(context.Background(), alice, &domain.CreateFollowRequest{Following: "bob"})

	assert.ErrorIs(t, err, ErrAlreadyFollowing)
	follows.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFollowCreateRaceLossIsDuplicate(t *testing.T) {
	follows, users, svc := newFollowFixture()
	users.On("GetByUsername", mock.Anything, "bob").Return(&domain.User{ID: "user-2", Username: "bob"}, nil)
	follows.On("Exists", mock.Anything, "user-1", "user-2").Return(false, nil)
	follows.On("Create", mock.Anything, mock.Anything).Return(repository.ErrAlreadyFollowing)

	_, err := svc.Create(context.Background(), alice, &domain.CreateFollowRequest{Following: "bob"})

	assert.ErrorIs(t, err, ErrAlreadyFollowing)
}

func TestFollowCreateBindsFollowerToActor(t *testing.T) {
	follows, users, svc := newFollowFixture()
	users.On("GetByUsername", mock.Anything, "bob").Return(&domain.User{ID: "user-2", Username: "bob"}, nil)
	follows.On("Exists", mock.Anything, "user-1", "user-2").Return(false, nil)
	follows.On("Create", mock.Anything, mock.MatchedBy(func(f *domain.Follow) bool {
		return f.FollowerID == "user-1" && f.FollowingID == "user-2"
	})).Return(nil)

	follow, err := svc.Create(context.Background(), alice, &domain.CreateFollowRequest{Following: "bob"})

	assert.NoError(t, err)
	assert.Equal(t, "alice", follow.FollowerUsername)
	assert.Equal(t, "bob", follow.FollowingUsername)
	follows.AssertExpectations(t)
}

func TestFollowGetHidesOtherUsersEdges(t *testing.T) {
	follows, _, svc := newFollowFixture()
	follows.On("GetByID", mock.Anything, uint(7)).Return(&domain.Follow{ID: 7, FollowerID: "user-9"}, nil)

	_, err := svc.Get(context.Background(), alice, 7)

	assert.ErrorIs(t, err, repository.ErrFollowNotFound)
}

func TestFollowDeleteHidesOtherUsersEdges(t *testing.T) {
	follows, _, svc := newFollowFixture()
	follows.On("GetByID", mock.Anything, uint(7)).Return(&domain.Follow{ID: 7, FollowerID: "user-9"}, nil)

	err := svc.Delete(context.Background(), alice, 7)

	assert.ErrorIs(t, err, repository.ErrFollowNotFound)
	follows.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestFollowListScopedToActor(t *testing.T) {
	follows, _, svc := newFollowFixture()
	follows.On("ListByFollower", mock.Anything, "user-1", "bo").Return([]domain.Follow{
		{ID: 1, FollowerID: "user-1", FollowingUsername: "bob"},
	}, nil)

	result, err := svc.List(context.Background(), alice, "bo")

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, "bob", result[0].FollowingUsername)
	follows.AssertExpectations(t)
}
