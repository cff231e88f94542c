package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/posk43/api-final-yatube/internal/domain"
)

func TestPostCreateResolvesAuthorUsername(t *testing.T) {
	db := newTestDB(t)
	seedUsers(t, db)
	repo := NewGormPostRepository(db)
	ctx := context.Background()

	post := &domain.Post{AuthorID: "user-1", Text: "first"}
	assert.NoError(t, repo.Create(ctx, post))
	assert.NotZero(t, post.ID)

	got, err := repo.GetByID(ctx, post.ID)
	assert.NoError(t, err)
	assert.Equal(t, "alice", got.Author)
	assert.Equal(t, "first", got.Text)
}

func TestPostGetMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormPostRepository(db)

	_, err := repo.GetByID(context.Background(), 12345)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestPostListPagesNewestFirst(t *testing.T) {
	db := newTestDB(t)
	seedUsers(t, db)
	repo := NewGormPostRepository(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		assert.NoError(t, repo.Create(ctx, &domain.Post{AuthorID: "user-1", Text: fmt.Sprintf("post %d", i)}))
	}

	page, count, err := repo.List(ctx, 2, 0)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), count)
	assert.Len(t, page, 2)
	assert.Equal(t, "post 4", page[0].Text)
	assert.Equal(t, "post 3", page[1].Text)

	rest, count, err := repo.List(ctx, 10, 4)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), count)
	assert.Len(t, rest, 1)
	assert.Equal(t, "post 0", rest[0].Text)
}

func TestPostUpdateClearsGroup(t *testing.T) {
	db := newTestDB(t)
	seedUsers(t, db)
	assert.NoError(t, db.Create(&domain.GroupModel{Title: "cats", Slug: "cats"}).Error)
	repo := NewGormPostRepository(db)
	ctx := context.Background()

	groupID := uint(1)
	post := &domain.Post{AuthorID: "user-1", Text: "first", GroupID: &groupID}
	assert.NoError(t, repo.Create(ctx, post))

	post.GroupID = nil
	post.Text = "edited"
	assert.NoError(t, repo.Update(ctx, post))

	got, err := repo.GetByID(ctx, post.ID)
	assert.NoError(t, err)
	assert.Nil(t, got.GroupID)
	assert.Equal(t, "edited", got.Text)
}

func TestPostUpdateIdenticalValuesIsNoError(t *testing.T) {
	db := newTestDB(t)
	seedUsers(t, db)
	repo := NewGormPostRepository(db)
	ctx := context.Background()

	post := &domain.Post{AuthorID: "user-1", Text: "first"}
	assert.NoError(t, repo.Create(ctx, post))

	// Resubmitting unchanged values must not look like a missing row.
	assert.NoError(t, repo.Update(ctx, post))
	assert.NoError(t, repo.Update(ctx, post))
}

func TestPostDeleteRemovesComments(t *testing.T) {
	db := newTestDB(t)
	seedUsers(t, db)
	posts := NewGormPostRepository(db)
	comments := NewGormCommentRepository(db)
	ctx := context.Background()

	post := &domain.Post{AuthorID: "user-1", Text: "first"}
	assert.NoError(t, posts.Create(ctx, post))
	assert.NoError(t, comments.Create(ctx, &domain.Comment{PostID: post.ID, AuthorID: "user-2", Text: "hi"}))

	assert.NoError(t, posts.Delete(ctx, post.ID))

	var count int64
	assert.NoError(t, db.Model(&domain.CommentModel{}).Where("post_id = ?", post.ID).Count(&count).Error)
	assert.Zero(t, count)

	assert.ErrorIs(t, posts.Delete(ctx, post.ID), ErrPostNotFound)
}
