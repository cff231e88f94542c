package repository

import (
	"context"
	"errors"

	"github.com/posk43/api-final-yatube/internal/domain"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrGroupNotFound    = errors.New("group not found")
	ErrPostNotFound     = errors.New("post not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrFollowNotFound   = errors.New("follow relationship not found")
	ErrAlreadyFollowing = errors.New("already following")
)

// UserRepository defines read access to users provisioned by the auth
// service.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// GroupRepository defines read access to groups.
type GroupRepository interface {
	List(ctx context.Context) ([]domain.Group, error)
	GetByID(ctx context.Context, id uint) (*domain.Group, error)
}

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id uint) (*domain.Post, error)
	List(ctx context.Context, limit, offset int) ([]domain.Post, int64, error)
	Update(ctx context.Context, post *domain.Post) error
	UpdateImage(ctx context.Context, id uint, imageKey string) error
	Delete(ctx context.Context, id uint) error
}

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id uint) (*domain.Comment, error)
	ListByPost(ctx context.Context, postID uint) ([]domain.Comment, error)
	Update(ctx context.Context, comment *domain.Comment) error
	Delete(ctx context.Context, id uint) error
}

// FollowRepository defines persistence operations for follow edges.
type FollowRepository interface {
	Create(ctx context.Context, follow *domain.Follow) error
	GetByID(ctx context.Context, id uint) (*domain.Follow, error)
	// ListByFollower returns the edges where followerID is the follower,
	// optionally filtered by a substring match on the followed username.
	ListByFollower(ctx context.Context, followerID, search string) ([]domain.Follow, error)
	Exists(ctx context.Context, followerID, followingID string) (bool, error)
	Delete(ctx context.Context, id uint) error
}
