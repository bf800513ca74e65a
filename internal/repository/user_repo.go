package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/eunoia-app/eunoia-api/internal/models"
)

// UserRepository provides account persistence plus the atomic daily usage
// counters that gate metered features.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, id uint, updates map[string]any) error
	ConsumeDailyChat(ctx context.Context, id uint, today string, limit int) (bool, error)
	ConsumeDailyReport(ctx context.Context, id uint, today string, limit int) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a GORM-backed user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id uint, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ConsumeDailyChat increments the chat counter for the given UTC date in a
// single conditional UPDATE, resetting a stale counter in the same statement.
// It reports false when the counter already sits at the limit for today.
// A limit of zero or below means unmetered.
func (r *userRepository) ConsumeDailyChat(ctx context.Context, id uint, today string, limit int) (bool, error) {
	return r.consumeDaily(ctx, id, "daily_chat_count", "daily_chat_reset_date", today, limit)
}

// ConsumeDailyReport is the report-generation counterpart of ConsumeDailyChat.
func (r *userRepository) ConsumeDailyReport(ctx context.Context, id uint, today string, limit int) (bool, error) {
	return r.consumeDaily(ctx, id, "daily_report_count", "daily_report_reset_date", today, limit)
}

func (r *userRepository) consumeDaily(ctx context.Context, id uint, countColumn, dateColumn, today string, limit int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Where("? <= 0 OR "+dateColumn+" <> ? OR "+countColumn+" < ?", limit, today, limit).
		Updates(map[string]any{
			countColumn: gorm.Expr("CASE WHEN "+dateColumn+" = ? THEN "+countColumn+" + 1 ELSE 1 END", today),
			dateColumn:  today,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
