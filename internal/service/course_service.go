package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/eunoia-app/eunoia-api/internal/dto"
	"github.com/eunoia-app/eunoia-api/internal/models"
	"github.com/eunoia-app/eunoia-api/internal/repository"
)

const featuredCoursesCacheKey = "courses:featured:v1"

// CourseService serves the course marketplace listings.
type CourseService interface {
	Featured(ctx context.Context) (dto.CourseListResponse, error)
}

type courseService struct {
	repo   repository.CourseRepository
	cache  *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewCourseService constructs the course service. The cache client may be nil
// when Redis is not configured.
func NewCourseService(repo repository.CourseRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) CourseService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &courseService{
		repo:   repo,
		cache:  cache,
		ttl:    ttl,
		logger: logger.With().Str("component", "course_service").Logger(),
	}
}

func (s *courseService) Featured(ctx context.Context) (dto.CourseListResponse, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, featuredCoursesCacheKey).Result(); err == nil && cached != "" {
			var response dto.CourseListResponse
			if err := json.Unmarshal([]byte(cached), &response); err == nil {
				response.CacheHit = true
				return response, nil
			}
		}
	}

	courses, err := s.repo.ListFeatured(ctx)
	if err != nil {
		return dto.CourseListResponse{}, err
	}

	items := make([]dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		items = append(items, courseResponse(course))
	}
	response := dto.CourseListResponse{Items: items}

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, featuredCoursesCacheKey, payload, s.ttl).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to cache featured courses")
			}
		}
	}

	return response, nil
}

func courseResponse(course models.Course) dto.CourseResponse {
	return dto.CourseResponse{
		ID:               course.ID,
		Title:            course.Title,
		Description:      course.Description,
		CoverImage:       course.CoverImage,
		PartnerName:      course.PartnerName,
		TotalLessons:     course.TotalLessons,
		PlusTrialLessons: course.PlusTrialLessons,
		FreeTrialLessons: course.FreeTrialLessons,
		Price:            course.Price,
		PlusDiscount:     course.PlusDiscount,
		IsFeatured:       course.IsFeatured,
		CreatedAt:        course.CreatedAt,
	}
}
