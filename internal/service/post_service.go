package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/posk43/api-final-yatube/internal/audit"
	"github.com/posk43/api-final-yatube/internal/domain"
	"github.com/posk43/api-final-yatube/internal/repository"
	"github.com/posk43/api-final-yatube/pkg/log"
	"github.com/posk43/api-final-yatube/pkg/pubsub"
	"github.com/posk43/api-final-yatube/pkg/storage"
)

// PaginationLimits clamps the limit/offset scheme on list endpoints.
type PaginationLimits struct {
	DefaultLimit int
	MaxLimit     int
}

// postService implements PostService.
type postService struct {
	posts  repository.PostRepository
	groups repository.GroupRepository
	store  storage.Storage
	events pubsub.Publisher
	pages  PaginationLimits
	urlTTL time.Duration
}

// NewPostService creates a new PostService instance. store and events
// may be nil, disabling images and event publishing respectively.
func NewPostService(
	posts repository.PostRepository,
	groups repository.GroupRepository,
	store storage.Storage,
	events pubsub.Publisher,
	pages PaginationLimits,
	urlTTL time.Duration,
) PostService {
	return &postService{
		posts:  posts,
		groups: groups,
		store:  store,
		events: events,
		pages:  pages,
		urlTTL: urlTTL,
	}
}

// clamp applies the default and maximum page size. Negative offsets are
// treated as zero.
func (s *postService) clamp(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = s.pages.DefaultLimit
	}
	if s.pages.MaxLimit > 0 && limit > s.pages.MaxLimit {
		limit = s.pages.MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// resolveImageURL fills in ImageURL from the stored object key.
func (s *postService) resolveImageURL(ctx context.Context, post *domain.Post) {
	if post.Image == "" || s.store == nil {
		return
	}
	url, err := s.store.GetURL(ctx, post.Image, s.urlTTL)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Uint("post_id", post.ID).Msg("failed to resolve image url")
		return
	}
	post.ImageURL = url
}

// List returns a page of posts, newest first.
func (s *postService) List(ctx context.Context, limit, offset int) (*domain.PostPage, error) {
	limit, offset = s.clamp(limit, offset)

	posts, count, err := s.posts.List(ctx, limit, offset)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list posts")
		return nil, err
	}

	results := make([]domain.PostResponse, 0, len(posts))
	for i := range posts {
		s.resolveImageURL(ctx, &posts[i])
		results = append(results, posts[i].ToResponse())
	}

	return &domain.PostPage{
		Count:   count,
		Limit:   limit,
		Offset:  offset,
		Results: results,
	}, nil
}

// Create creates a post owned by the acting identity. Any client-supplied
// author is ignored by construction: the author comes from the token.
func (s *postService) Create(ctx context.Context, actor Identity, req *domain.CreatePostRequest) (*domain.Post, error) {
	if req.Group != nil {
		if _, err := s.groups.GetByID(ctx, *req.Group); err != nil {
			return nil, err
		}
	}

	post := &domain.Post{
		AuthorID: actor.UserID,
		Author:   actor.Username,
		GroupID:  req.Group,
		Text:     req.Text,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to create post")
		return nil, err
	}

	audit.Log(ctx, audit.ActionPostCreate, actor.UserID, fmt.Sprint(post.ID))
	publishEvent(ctx, s.events, pubsub.EntityPost, pubsub.EventPostCreated, post.ID, actor.Username, post.ToResponse())

	return post, nil
}

// Get retrieves a single post.
func (s *postService) Get(ctx context.Context, id uint) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.resolveImageURL(ctx, post)
	return post, nil
}

// Update replaces the mutable fields of a post. Only the author may
// update; a nil Group clears the association.
func (s *postService) Update(ctx context.Context, actor Identity, id uint, req *domain.UpdatePostRequest) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != actor.UserID {
		return nil, ErrNotAuthor
	}

	if req.Group != nil {
		if _, err := s.groups.GetByID(ctx, *req.Group); err != nil {
			return nil, err
		}
	}

	post.Text = req.Text
	post.GroupID = req.Group
	if err := s.posts.Update(ctx, post); err != nil {
		log.Ctx(ctx).Error().Err(err).Uint("post_id", id).Msg("failed to update post")
		return nil, err
	}

	audit.Log(ctx, audit.ActionPostUpdate, actor.UserID, fmt.Sprint(id))
	publishEvent(ctx, s.events, pubsub.EntityPost, pubsub.EventPostUpdated, post.ID, actor.Username, post.ToResponse())

	s.resolveImageURL(ctx, post)
	return post, nil
}

// Patch updates only the provided fields of a post. Only the author may
// patch; an absent group field leaves the association unchanged.
func (s *postService) Patch(ctx context.Context, actor Identity, id uint, req *domain.PatchPostRequest) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != actor.UserID {
		return nil, ErrNotAuthor
	}

	if req.Text != nil {
		post.Text = *req.Text
	}
	if req.Group != nil {
		if _, err := s.groups.GetByID(ctx, *req.Group); err != nil {
			return nil, err
		}
		post.GroupID = req.Group
	}

	if err := s.posts.Update(ctx, post); err != nil {
		log.Ctx(ctx).Error().Err(err).Uint("post_id", id).Msg("failed to patch post")
		return nil, err
	}

	audit.Log(ctx, audit.ActionPostUpdate, actor.UserID, fmt.Sprint(id))
	publishEvent(ctx, s.events, pubsub.EntityPost, pubsub.EventPostUpdated, post.ID, actor.Username, post.ToResponse())

	s.resolveImageURL(ctx, post)
	return post, nil
}

// Delete removes a post and its comments. Only the author may delete.
func (s *postService) Delete(ctx context.Context, actor Identity, id uint) error {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if post.AuthorID != actor.UserID {
		return ErrNotAuthor
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		log.Ctx(ctx).Error().Err(err).Uint("post_id", id).Msg("failed to delete post")
		return err
	}

	if post.Image != "" && s.store != nil {
		if err := s.store.Delete(ctx, post.Image); err != nil {
			log.Ctx(ctx).Warn().Err(err).Uint("post_id", id).Msg("failed to delete post image")
		}
	}

	audit.Log(ctx, audit.ActionPostDelete, actor.UserID, fmt.Sprint(id))
	publishEvent(ctx, s.events, pubsub.EntityPost, pubsub.EventPostDeleted, id, actor.Username, nil)

	return nil
}

// UploadImage stores a new image for the post and replaces any previous
// one. Only the author may upload.
func (s *postService) UploadImage(ctx context.Context, actor Identity, id uint, filename, contentType string, r io.Reader, size int64) (*domain.Post, error) {
	if s.store == nil {
		return nil, fmt.Errorf("image storage is not configured")
	}

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != actor.UserID {
		return nil, ErrNotAuthor
	}

	key := fmt.Sprintf("posts/%d/%s%s", id, uuid.New().String(), filepath.Ext(filename))
	if err := s.store.Write(ctx, key, r, size, contentType); err != nil {
		log.Ctx(ctx).Error().Err(err).Uint("post_id", id).Msg("failed to store post image")
		return nil, err
	}

	if err := s.posts.UpdateImage(ctx, id, key); err != nil {
		return nil, err
	}

	// Old image is unreferenced now; removal is best-effort.
	if post.Image != "" {
		if err := s.store.Delete(ctx, post.Image); err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("key", post.Image).Msg("failed to delete replaced image")
		}
	}

	post.Image = key
	audit.LogWithDetail(ctx, audit.ActionPostImage, actor.UserID, fmt.Sprint(id), key)

	s.resolveImageURL(ctx, post)
	return post, nil
}

var _ PostService = (*postService)(nil)
