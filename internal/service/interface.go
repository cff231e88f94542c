package service

import (
	"context"
	"errors"
	"io"

	"github.com/posk43/api-final-yatube/internal/domain"
)

var (
	// ErrNotAuthor is returned when the acting identity tries to mutate
	// a post or comment it does not own.
	ErrNotAuthor = errors.New("only the author may modify this resource")

	// ErrSelfFollow is returned when a user tries to follow themselves.
	ErrSelfFollow = errors.New("self-follow not allowed")

	// ErrAlreadyFollowing is returned on duplicate follow edges.
	ErrAlreadyFollowing = errors.New("already subscribed")

	// ErrFollowingNotFound is returned when the followed username does
	// not reference an existing user.
	ErrFollowingNotFound = errors.New("following user does not exist")
)

// Identity is the authenticated caller taken from the token claims.
type Identity struct {
	UserID   string
	Username string
}

// PostService implements post operations.
type PostService interface {
	List(ctx context.Context, limit, offset int) (*domain.PostPage, error)
	Create(ctx context.Context, actor Identity, req *domain.CreatePostRequest) (*domain.Post, error)
	Get(ctx context.Context, id uint) (*domain.Post, error)
	Update(ctx context.Context, actor Identity, id uint, req *domain.UpdatePostRequest) (*domain.Post, error)
	Patch(ctx context.Context, actor Identity, id uint, req *domain.PatchPostRequest) (*domain.Post, error)
	Delete(ctx context.Context, actor Identity, id uint) error
	UploadImage(ctx context.Context, actor Identity, id uint, filename, contentType string, r io.Reader, size int64) (*domain.Post, error)
}

// CommentService implements comment operations scoped to a post.
type CommentService interface {
	ListByPost(ctx context.Context, postID uint) ([]domain.Comment, error)
	Create(ctx context.Context, actor Identity, postID uint, req *domain.CreateCommentRequest) (*domain.Comment, error)
	Get(ctx context.Context, postID, commentID uint) (*domain.Comment, error)
	Update(ctx context.Context, actor Identity, postID, commentID uint, req *domain.UpdateCommentRequest) (*domain.Comment, error)
	Patch(ctx context.Context, actor Identity, postID, commentID uint, req *domain.PatchCommentRequest) (*domain.Comment, error)
	Delete(ctx context.Context, actor Identity, postID, commentID uint) error
}

// GroupService implements read-only group operations.
type GroupService interface {
	List(ctx context.Context) ([]domain.Group, error)
	Get(ctx context.Context, id uint) (*domain.Group, error)
	// Refresh reloads the group catalog into the cache.
	Refresh(ctx context.Context) error
}

// FollowService implements follow operations for the acting identity.
type FollowService interface {
	List(ctx context.Context, actor Identity, search string) ([]domain.Follow, error)
	Create(ctx context.Context, actor Identity, req *domain.CreateFollowRequest) (*domain.Follow, error)
	Get(ctx context.Context, actor Identity, id uint) (*domain.Follow, error)
	Delete(ctx context.Context, actor Identity, id uint) error
}
