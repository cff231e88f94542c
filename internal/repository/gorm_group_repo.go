package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/posk43/api-final-yatube/internal/domain"
)

// GormGroupRepository implements GroupRepository using GORM. Groups are
// seeded externally; this repository only reads.
type GormGroupRepository struct {
	db *gorm.DB
}

// NewGormGroupRepository creates a new GORM-backed group repository.
func NewGormGroupRepository(db *gorm.DB) *GormGroupRepository {
	return &GormGroupRepository{db: db}
}

// List returns all groups ordered by id.
func (r *GormGroupRepository) List(ctx context.Context) ([]domain.Group, error) {
	var models []domain.GroupModel
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}

	groups := make([]domain.Group, 0, len(models))
	for i := range models {
		groups = append(groups, *models[i].ToDomain())
	}
	return groups, nil
}

// GetByID retrieves a group by ID.
func (r *GormGroupRepository) GetByID(ctx context.Context, id uint) (*domain.Group, error) {
	var model domain.GroupModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, result.Error
	}
	return model.ToDomain(), nil
}

var _ GroupRepository = (*GormGroupRepository)(nil)
