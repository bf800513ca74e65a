package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/eunoia-app/eunoia-api/internal/models"
	"github.com/eunoia-app/eunoia-api/internal/repository"
)

// SeedService populates the catalog tables on an empty database so a fresh
// deployment has featured courses and a default companion persona.
type SeedService interface {
	Run(ctx context.Context) error
}

type seedService struct {
	courses repository.CourseRepository
	styles  repository.StyleRepository
	logger  zerolog.Logger
}

// NewSeedService constructs the seed service.
func NewSeedService(courses repository.CourseRepository, styles repository.StyleRepository, logger zerolog.Logger) SeedService {
	return &seedService{
		courses: courses,
		styles:  styles,
		logger:  logger.With().Str("component", "seed_service").Logger(),
	}
}

// Run is idempotent: each table is seeded only while empty.
func (s *seedService) Run(ctx context.Context) error {
	count, err := s.courses.Count(ctx)
	if err != nil {
		return err
	}
	if count == 0 {
		if err := s.courses.CreateBatch(ctx, defaultCourses()); err != nil {
			return err
		}
		s.logger.Info().Msg("seeded featured courses")
	}

	styleCount, err := s.styles.Count(ctx)
	if err != nil {
		return err
	}
	if styleCount == 0 {
		if err := s.styles.Create(ctx, defaultStyle()); err != nil {
			return err
		}
		s.logger.Info().Msg("seeded default companion persona")
	}

	return nil
}

func defaultCourses() []models.Course {
	return []models.Course{
		{
			Title:            "青少年情绪管理入门",
			CoverImage:       "https://picsum.photos/seed/course1/400/200",
			PartnerName:      "Eunoia Academy",
			Description:      "系统学习如何识别与管理情绪",
			TotalLessons:     12,
			PlusTrialLessons: 3,
			FreeTrialLessons: 1,
			Price:            199,
			PlusDiscount:     0.1,
			IsFeatured:       true,
		},
		{
			Title:            "压力缓解与学习效率",
			CoverImage:       "https://picsum.photos/seed/course2/400/200",
			PartnerName:      "MindLab",
			Description:      "改善专注与提升学习效率的方法",
			TotalLessons:     10,
			PlusTrialLessons: 2,
			FreeTrialLessons: 1,
			Price:            149,
			PlusDiscount:     0.1,
			IsFeatured:       true,
		},
	}
}

func defaultStyle() *models.ChatStyle {
	return &models.ChatStyle{
		Name:          "暖心陪伴",
		Avatar:        "🤗",
		Personality:   "温暖共情",
		Background:    "陪伴型",
		DialogueStyle: "短句、温柔、肯定",
		IsDefault:     true,
	}
}
