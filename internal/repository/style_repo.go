package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/eunoia-app/eunoia-api/internal/models"
)

// StyleRepository covers the companion persona operations the generic gateway
// cannot express: the cascading delete of an original style and the existence
// probe backing status checks.
type StyleRepository interface {
	GetByID(ctx context.Context, id uint) (*models.ChatStyle, error)
	Create(ctx context.Context, style *models.ChatStyle) error
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id uint) error
	DeleteOriginalCascade(ctx context.Context, id uint) error
}

type styleRepository struct {
	db *gorm.DB
}

// NewStyleRepository creates a GORM-backed style repository.
func NewStyleRepository(db *gorm.DB) StyleRepository {
	return &styleRepository{db: db}
}

func (r *styleRepository) GetByID(ctx context.Context, id uint) (*models.ChatStyle, error) {
	var style models.ChatStyle
	if err := r.db.WithContext(ctx).First(&style, id).Error; err != nil {
		return nil, err
	}
	return &style, nil
}

func (r *styleRepository) Create(ctx context.Context, style *models.ChatStyle) error {
	return r.db.WithContext(ctx).Create(style).Error
}

func (r *styleRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ChatStyle{}).Count(&count).Error
	return count, err
}

func (r *styleRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.ChatStyle{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteOriginalCascade removes an original style and, in the same
// transaction, marks every imported copy referencing it as orphaned. Either
// both effects land or neither does.
func (r *styleRepository) DeleteOriginalCascade(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ChatStyle{}).
			Where("original_style_id = ?", id).
			Update("is_deleted_by_author", true).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.ChatStyle{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
