package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/eunoia-app/eunoia-api/internal/models"
)

// CourseRepository backs the course marketplace listings and seeding.
type CourseRepository interface {
	ListFeatured(ctx context.Context) ([]models.Course, error)
	Count(ctx context.Context) (int64, error)
	CreateBatch(ctx context.Context, courses []models.Course) error
}

type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository creates a GORM-backed course repository.
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) ListFeatured(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	err := r.db.WithContext(ctx).
		Where("is_featured = ?", true).
		Order("created_at DESC").
		Find(&courses).Error
	return courses, err
}

func (r *courseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Course{}).Count(&count).Error
	return count, err
}

func (r *courseRepository) CreateBatch(ctx context.Context, courses []models.Course) error {
	if len(courses) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&courses).Error
}
