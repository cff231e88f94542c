package service

import (
	"context"
	"fmt"

	"github.com/posk43/api-final-yatube/internal/audit"
	"github.com/posk43/api-final-yatube/internal/domain"
	"github.com/posk43/api-final-yatube/internal/repository"
	"github.com/posk43/api-final-yatube/pkg/log"
	"github.com/posk43/api-final-yatube/pkg/pubsub"
)

// commentService implements CommentService. Every operation is scoped to
// a post: an unknown post id fails with ErrPostNotFound before anything
// else is looked at.
type commentService struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
	events   pubsub.Publisher
}

// NewCommentService creates a new CommentService instance.
func NewCommentService(
	comments repository.CommentRepository,
	posts repository.PostRepository,
	events pubsub.Publisher,
) CommentService {
	return &commentService{
		comments: comments,
		posts:    posts,
		events:   events,
	}
}

// requirePost verifies the scoping post exists.
func (s *commentService) requirePost(ctx context.Context, postID uint) error {
	_, err := s.posts.GetByID(ctx, postID)
	return err
}

// getScoped fetches a comment and verifies it belongs to the post from
// the path. A comment reached through the wrong post is not found.
func (s *commentService) getScoped(ctx context.Context, postID, commentID uint) (*domain.Comment, error) {
	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}

	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.PostID != postID {
		return nil, repository.ErrCommentNotFound
	}
	return comment, nil
}

// ListByPost returns all comments of a post.
func (s *commentService) ListByPost(ctx context.Context, postID uint) ([]domain.Comment, error) {
	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}
	return s.comments.ListByPost(ctx, postID)
}

// Create creates a comment under the given post. Author and post are
// bound server-side.
func (s *commentService) Create(ctx context.Context, actor Identity, postID uint, req *domain.CreateCommentRequest) (*domain.Comment, error) {
	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		PostID:   postID,
		AuthorID: actor.UserID,
		Author:   actor.Username,
		Text:     req.Text,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		log.Ctx(ctx).Error().Err(err).Uint("post_id", postID).Msg("failed to create comment")
		return nil, err
	}

	audit.Log(ctx, audit.ActionCommentCreate, actor.UserID, fmt.Sprint(comment.ID))
	publishEvent(ctx, s.events, pubsub.EntityComment, pubsub.EventCommentCreated, comment.ID, actor.Username, comment.ToResponse())

	return comment, nil
}

// Get retrieves a comment within its post scope.
func (s *commentService) Get(ctx context.Context, postID, commentID uint) (*domain.Comment, error) {
	return s.getScoped(ctx, postID, commentID)
}

// Update replaces the text of a comment. Only the author may update; the
// post association is immutable.
func (s *commentService) Update(ctx context.Context, actor Identity, postID, commentID uint, req *domain.UpdateCommentRequest) (*domain.Comment, error) {
	comment, err := s.getScoped(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != actor.UserID {
		return nil, ErrNotAuthor
	}

	comment.Text = req.Text
	if err := s.comments.Update(ctx, comment); err != nil {
		log.Ctx(ctx).Error().Err(err).Uint("comment_id", commentID).Msg("failed to update comment")
		return nil, err
	}

	audit.Log(ctx, audit.ActionCommentUpdate, actor.UserID, fmt.Sprint(commentID))
	publishEvent(ctx, s.events, pubsub.EntityComment, pubsub.EventCommentUpdated, comment.ID, actor.Username, comment.ToResponse())

	return comment, nil
}

// Patch updates only the provided fields of a comment. Only the author
// may patch, including with an empty body: ownership is checked before
// any field is looked at.
func (s *commentService) Patch(ctx context.Context, actor Identity, postID, commentID uint, req *domain.PatchCommentRequest) (*domain.Comment, error) {
	comment, err := s.getScoped(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != actor.UserID {
		return nil, ErrNotAuthor
	}

	if req.Text == nil {
		return comment, nil
	}

	comment.Text = *req.Text
	if err := s.comments.Update(ctx, comment); err != nil {
		log.Ctx(ctx).Error().Err(err).Uint("comment_id", commentID).Msg("failed to patch comment")
		return nil, err
	}

	audit.Log(ctx, audit.ActionCommentUpdate, actor.UserID, fmt.Sprint(commentID))
	publishEvent(ctx, s.events, pubsub.EntityComment, pubsub.EventCommentUpdated, comment.ID, actor.Username, comment.ToResponse())

	return comment, nil
}

// Delete removes a comment. Only the author may delete.
func (s *commentService) Delete(ctx context.Context, actor Identity, postID, commentID uint) error {
	comment, err := s.getScoped(ctx, postID, commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != actor.UserID {
		return ErrNotAuthor
	}

	if err := s.comments.Delete(ctx, commentID); err != nil {
		log.Ctx(ctx).Error().Err(err).Uint("comment_id", commentID).Msg("failed to delete comment")
		return err
	}

	audit.Log(ctx, audit.ActionCommentDelete, actor.UserID, fmt.Sprint(commentID))
	publishEvent(ctx, s.events, pubsub.EntityComment, pubsub.EventCommentDeleted, commentID, actor.Username, nil)

	return nil
}

var _ CommentService = (*commentService)(nil)
