package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/posk43/api-final-yatube/internal/domain"
)

// GormCommentRepository implements CommentRepository using GORM.
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GORM-backed comment repository.
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

type commentRow struct {
	ID             uint
	PostID         uint
	AuthorID       string
	Text           string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	AuthorUsername string
}

func (row *commentRow) toDomain() domain.Comment {
	return domain.Comment{
		ID:        row.ID,
		PostID:    row.PostID,
		AuthorID:  row.AuthorID,
		Author:    row.AuthorUsername,
		Text:      row.Text,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

const commentSelect = "comments.id, comments.post_id, comments.author_id, comments.text, " +
	"comments.created_at, comments.updated_at, users.username AS author_username"

// Create inserts a new comment and fills in the generated fields.
func (r *GormCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	model := domain.CommentModel{
		PostID:   comment.PostID,
		AuthorID: comment.AuthorID,
		Text:     comment.Text,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}

	comment.ID = model.ID
	comment.CreatedAt = model.CreatedAt
	comment.UpdatedAt = model.UpdatedAt
	return nil
}

// GetByID retrieves a comment with its author's username.
func (r *GormCommentRepository) GetByID(ctx context.Context, id uint) (*domain.Comment, error) {
	var row commentRow
	result := r.db.WithContext(ctx).
		Table("comments").
		Select(commentSelect).
		Joins("JOIN users ON users.id = comments.author_id").
		Where("comments.id = ?", id).
		Take(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, result.Error
	}

	comment := row.toDomain()
	return &comment, nil
}

// ListByPost returns all comments of a post, oldest first.
func (r *GormCommentRepository) ListByPost(ctx context.Context, postID uint) ([]domain.Comment, error) {
	var rows []commentRow
	err := r.db.WithContext(ctx).
		Table("comments").
		Select(commentSelect).
		Joins("JOIN users ON users.id = comments.author_id").
		Where("comments.post_id = ?", postID).
		Order("comments.created_at, comments.id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	comments := make([]domain.Comment, 0, len(rows))
	for i := range rows {
		comments = append(comments, rows[i].toDomain())
	}
	return comments, nil
}

// Update persists the text of a comment. The post association and the
// author never change. Existence is the caller's concern: RowsAffected
// is not checked because MySQL reports rows changed, which is zero for
// an identical resubmission.
func (r *GormCommentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	return r.db.WithContext(ctx).
		Model(&domain.CommentModel{}).
		Where("id = ?", comment.ID).
		Update("text", comment.Text).Error
}

// Delete removes a comment.
func (r *GormCommentRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.CommentModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}

var _ CommentRepository = (*GormCommentRepository)(nil)
