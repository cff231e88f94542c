package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/posk43/api-final-yatube/internal/domain"
)

func TestCommentCreateAndListByPost(t *testing.T) {
	db := newTestDB(t)
	seedUsers(t, db)
	posts := NewGormPostRepository(db)
	comments := NewGormCommentRepository(db)
	ctx := context.Background()

	post := &domain.Post{AuthorID: "user-1", Text: "first"}
	assert.NoError(t, posts.Create(ctx, post))

	first := &domain.Comment{PostID: post.ID, AuthorID: "user-2", Text: "one"}
	second := &domain.Comment{PostID: post.ID, AuthorID: "user-1", Text: "two"}
	assert.NoError(t, comments.Create(ctx, first))
	assert.NoError(t, comments.Create(ctx, second))

	list, err := comments.ListByPost(ctx, post.ID)
	assert.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, "one", list[0].Text)
	assert.Equal(t, "bob", list[0].Author)
	assert.Equal(t, "two", list[1].Text)
}

func TestCommentUpdateIdenticalValuesIsNoError(t *testing.T) {
	db := newTestDB(t)
	seedUsers(t, db)
	posts := NewGormPostRepository(db)
	comments := NewGormCommentRepository(db)
	ctx := context.Background()

	post := &domain.Post{AuthorID: "user-1", Text: "first"}
	assert.NoError(t, posts.Create(ctx, post))

	comment := &domain.Comment{PostID: post.ID, AuthorID: "user-2", Text: "one"}
	assert.NoError(t, comments.Create(ctx, comment))

	// Resubmitting unchanged text must not look like a missing row.
	assert.NoError(t, comments.Update(ctx, comment))
	assert.NoError(t, comments.Update(ctx, comment))

	got, err := comments.GetByID(ctx, comment.ID)
	assert.NoError(t, err)
	assert.Equal(t, "one", got.Text)
}

func TestCommentDeleteMissing(t *testing.T) {
	db := newTestDB(t)
	comments := NewGormCommentRepository(db)

	assert.ErrorIs(t, comments.Delete(context.Background(), 12345), ErrCommentNotFound)
}
