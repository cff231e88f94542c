package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/posk43/api-final-yatube/internal/domain"
)

// isUniqueViolation reports whether err is a unique-constraint violation.
// With TranslateError enabled GORM wraps these as gorm.ErrDuplicatedKey.
func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// GormFollowRepository implements FollowRepository using GORM.
type GormFollowRepository struct {
	db *gorm.DB
}

// NewGormFollowRepository creates a new GORM-backed follow repository.
func NewGormFollowRepository(db *gorm.DB) *GormFollowRepository {
	return &GormFollowRepository{db: db}
}

type followRow struct {
	ID                uint
	FollowerID        string
	FollowingID       string
	CreatedAt         time.Time
	FollowerUsername  string
	FollowingUsername string
}

func (row *followRow) toDomain() domain.Follow {
	return domain.Follow{
		ID:                row.ID,
		FollowerID:        row.FollowerID,
		FollowingID:       row.FollowingID,
		FollowerUsername:  row.FollowerUsername,
		FollowingUsername: row.FollowingUsername,
		CreatedAt:         row.CreatedAt,
	}
}

const followSelect = "follows.id, follows.follower_id, follows.following_id, follows.created_at, " +
	"follower.username AS follower_username, following.username AS following_username"

// Create inserts a follow edge. The composite unique index is the
// backstop for concurrent duplicates; violations map to
// ErrAlreadyFollowing.
func (r *GormFollowRepository) Create(ctx context.Context, follow *domain.Follow) error {
	model := domain.FollowModel{
		FollowerID:  follow.FollowerID,
		FollowingID: follow.FollowingID,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyFollowing
		}
		return err
	}

	follow.ID = model.ID
	follow.CreatedAt = model.CreatedAt
	return nil
}

// GetByID retrieves a follow edge with both usernames resolved.
func (r *GormFollowRepository) GetByID(ctx context.Context, id uint) (*domain.Follow, error) {
	var row followRow
	result := r.db.WithContext(ctx).
		Table("follows").
		Select(followSelect).
		Joins("JOIN users AS follower ON follower.id = follows.follower_id").
		Joins("JOIN users AS following ON following.id = follows.following_id").
		Where("follows.id = ?", id).
		Take(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrFollowNotFound
		}
		return nil, result.Error
	}

	follow := row.toDomain()
	return &follow, nil
}

// ListByFollower returns the edges where followerID is the follower,
// newest first. A non-empty search narrows the result to followed
// usernames containing the substring.
func (r *GormFollowRepository) ListByFollower(ctx context.Context, followerID, search string) ([]domain.Follow, error) {
	q := r.db.WithContext(ctx).
		Table("follows").
		Select(followSelect).
		Joins("JOIN users AS follower ON follower.id = follows.follower_id").
		Joins("JOIN users AS following ON following.id = follows.following_id").
		Where("follows.follower_id = ?", followerID)

	if search != "" {
		q = q.Where("following.username LIKE ?", "%"+search+"%")
	}

	var rows []followRow
	if err := q.Order("follows.created_at DESC, follows.id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	follows := make([]domain.Follow, 0, len(rows))
	for i := range rows {
		follows = append(follows, rows[i].toDomain())
	}
	return follows, nil
}

// Exists checks whether followerID already follows followingID.
func (r *GormFollowRepository) Exists(ctx context.Context, followerID, followingID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.FollowModel{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete removes a follow edge.
func (r *GormFollowRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.FollowModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFollowNotFound
	}
	return nil
}

var _ FollowRepository = (*GormFollowRepository)(nil)
