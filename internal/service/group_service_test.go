package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/posk43/api-final-yatube/internal/domain"
	"github.com/posk43/api-final-yatube/internal/repository"
)

func TestGroupListWithoutCache(t *testing.T) {
	groups := new(repository.MockGroupRepository)
	groups.On("List", mock.Anything).Return([]domain.Group{
		{ID: 1, Title: "cats", Slug: "cats"},
		{ID: 2, Title: "dogs", Slug: "dogs"},
	}, nil)
	svc := NewGroupService(groups, nil)

	result, err := svc.List(context.Background())

	assert.NoError(t, err)
	assert.Len(t, result, 2)
	groups.AssertExpectations(t)
}

func TestGroupGetWithoutCache(t *testing.T) {
	groups := new(repository.MockGroupRepository)
	groups.On("GetByID", mock.Anything, uint(1)).Return(&domain.Group{ID: 1, Title: "cats", Slug: "cats"}, nil)
	svc := NewGroupService(groups, nil)

	group, err := svc.Get(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, "cats", group.Slug)
}

func TestGroupGetMissing(t *testing.T) {
	groups := new(repository.MockGroupRepository)
	groups.On("GetByID", mock.Anything, uint(9)).Return(nil, repository.ErrGroupNotFound)
	svc := NewGroupService(groups, nil)

	_, err := svc.Get(context.Background(), 9)

	assert.ErrorIs(t, err, repository.ErrGroupNotFound)
}

func TestGroupRefreshWithoutCacheIsNoop(t *testing.T) {
	groups := new(repository.MockGroupRepository)
	svc := NewGroupService(groups, nil)

	assert.NoError(t, svc.Refresh(context.Background()))
	groups.AssertNotCalled(t, "List", mock.Anything)
}
