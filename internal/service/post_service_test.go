package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/posk43/api-final-yatube/internal/domain"
	"github.com/posk43/api-final-yatube/internal/repository"
)

func newPostFixture() (*repository.MockPostRepository, *repository.MockGroupRepository, PostService) {
	posts := new(repository.MockPostRepository)
	groups := new(repository.MockGroupRepository)
	svc := NewPostService(posts, groups, nil, nil, PaginationLimits{DefaultLimit: 10, MaxLimit: 100}, 0)
	return posts, groups, svc
}

func TestPostCreateBindsAuthorToActor(t *testing.T) {
	posts, _, svc := newPostFixture()
	posts.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Post) bool {
		return p.AuthorID == "user-1" && p.Author == "alice"
	})).Return(nil)

	post, err := svc.Create(context.Background(), alice, &domain.CreatePostRequest{Text: "hello"})

	assert.NoError(t, err)
	assert.Equal(t, "alice", post.Author)
	posts.AssertExpectations(t)
}

func TestPostCreateRejectsUnknownGroup(t *testing.T) {
	posts, groups, svc := newPostFixture()
	groupID := uint(42)
	groups.On("GetByID", mock.Anything, groupID).Return(nil, repository.ErrGroupNotFound)

	_, err := svc.Create(context.Background(), alice, &domain.CreatePostRequest{Text: "hello", Group: &groupID})

	assert.ErrorIs(t, err, repository.ErrGroupNotFound)
	posts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPostUpdateRequiresAuthor(t *testing.T) {
	posts, _, svc := newPostFixture()
	posts.On("GetByID", mock.Anything, uint(3)).Return(&domain.Post{ID: 3, AuthorID: "user-9"}, nil)

	_, err := svc.Update(context.Background(), alice, 3, &domain.UpdatePostRequest{Text: "edited"})

	assert.ErrorIs(t, err, ErrNotAuthor)
	posts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestPostUpdateClearsGroupWhenAbsent(t *testing.T) {
	posts, _, svc := newPostFixture()
	groupID := uint(5)
	posts.On("GetByID", mock.Anything, uint(3)).Return(&domain.Post{ID: 3, AuthorID: "user-1", GroupID: &groupID}, nil)
	posts.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.Post) bool {
		return p.GroupID == nil && p.Text == "edited"
	})).Return(nil)

	post, err := svc.Update(context.Background(), alice, 3, &domain.UpdatePostRequest{Text: "edited"})

	assert.NoError(t, err)
	assert.Nil(t, post.GroupID)
	posts.AssertExpectations(t)
}

func TestPostPatchKeepsGroupWhenAbsent(t *testing.T) {
	posts, _, svc := newPostFixture()
	groupID := uint(5)
	text := "patched"
	posts.On("GetByID", mock.Anything, uint(3)).Return(&domain.Post{ID: 3, AuthorID: "user-1", GroupID: &groupID, Text: "old"}, nil)
	posts.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.Post) bool {
		return p.GroupID != nil && *p.GroupID == 5 && p.Text == "patched"
	})).Return(nil)

	post, err := svc.Patch(context.Background(), alice, 3, &domain.PatchPostRequest{Text: &text})

	assert.NoError(t, err)
	assert.NotNil(t, post.GroupID)
	posts.AssertExpectations(t)
}

func TestPostDeleteRequiresAuthor(t *testing.T) {
	posts, _, svc := newPostFixture()
	posts.On("GetByID", mock.Anything, uint(3)).Return(&domain.Post{ID: 3, AuthorID: "user-9"}, nil)

	err := svc.Delete(context.Background(), alice, 3)

	assert.ErrorIs(t, err, ErrNotAuthor)
	posts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestPostListClampsPagination(t *testing.T) {
	tests := []struct {
		name       string
		limit      int
		offset     int
		wantLimit  int
		wantOffset int
	}{
		{"zero limit uses default", 0, 0, 10, 0},
		{"limit above max is capped", 1000, 0, 100, 0},
		{"negative offset becomes zero", 5, -3, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts, _, svc := newPostFixture()
			posts.On("List", mock.Anything, tt.wantLimit, tt.wantOffset).Return([]domain.Post{}, int64(0), nil)

			page, err := svc.List(context.Background(), tt.limit, tt.offset)

			assert.NoError(t, err)
			assert.Equal(t, tt.wantLimit, page.Limit)
			assert.Equal(t, tt.wantOffset, page.Offset)
			posts.AssertExpectations(t)
		})
	}
}
