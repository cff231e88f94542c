package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/posk43/api-final-yatube/internal/domain"
)

// GormPostRepository implements PostRepository using GORM.
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository creates a new GORM-backed post repository.
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// postRow is the join row of a post and its author's username.
type postRow struct {
	ID             uint
	AuthorID       string
	GroupID        *uint
	Text           string
	Image          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	AuthorUsername string
}

func (row *postRow) toDomain() domain.Post {
	return domain.Post{
		ID:        row.ID,
		AuthorID:  row.AuthorID,
		Author:    row.AuthorUsername,
		GroupID:   row.GroupID,
		Text:      row.Text,
		Image:     row.Image,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

const postSelect = "posts.id, posts.author_id, posts.group_id, posts.text, posts.image, " +
	"posts.created_at, posts.updated_at, users.username AS author_username"

// Create inserts a new post and fills in the generated fields.
func (r *GormPostRepository) Create(ctx context.Context, post *domain.Post) error {
	model := domain.PostModel{
		AuthorID: post.AuthorID,
		GroupID:  post.GroupID,
		Text:     post.Text,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}

	post.ID = model.ID
	post.CreatedAt = model.CreatedAt
	post.UpdatedAt = model.UpdatedAt
	return nil
}

// GetByID retrieves a post with its author's username.
func (r *GormPostRepository) GetByID(ctx context.Context, id uint) (*domain.Post, error) {
	var row postRow
	result := r.db.WithContext(ctx).
		Table("posts").
		Select(postSelect).
		Joins("JOIN users ON users.id = posts.author_id").
		Where("posts.id = ?", id).
		Take(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, result.Error
	}

	post := row.toDomain()
	return &post, nil
}

// List returns a page of posts, newest first, plus the total count.
func (r *GormPostRepository) List(ctx context.Context, limit, offset int) ([]domain.Post, int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.PostModel{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var rows []postRow
	err := r.db.WithContext(ctx).
		Table("posts").
		Select(postSelect).
		Joins("JOIN users ON users.id = posts.author_id").
		Order("posts.created_at DESC, posts.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	posts := make([]domain.Post, 0, len(rows))
	for i := range rows {
		posts = append(posts, rows[i].toDomain())
	}
	return posts, count, nil
}

// Update persists the mutable fields of a post. The author never changes;
// a nil GroupID clears the group association. Existence is the caller's
// concern: RowsAffected is not checked because MySQL reports rows
// changed, which is zero for an identical resubmission.
func (r *GormPostRepository) Update(ctx context.Context, post *domain.Post) error {
	return r.db.WithContext(ctx).
		Model(&domain.PostModel{}).
		Where("id = ?", post.ID).
		Updates(map[string]interface{}{
			"text":     post.Text,
			"group_id": post.GroupID,
		}).Error
}

// UpdateImage stores the object key of the post's image.
func (r *GormPostRepository) UpdateImage(ctx context.Context, id uint, imageKey string) error {
	result := r.db.WithContext(ctx).
		Model(&domain.PostModel{}).
		Where("id = ?", id).
		Update("image", imageKey)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

// Delete removes a post and its comments.
func (r *GormPostRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&domain.CommentModel{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&domain.PostModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPostNotFound
		}
		return nil
	})
}

var _ PostRepository = (*GormPostRepository)(nil)
