package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/eunoia-app/eunoia-api/internal/service"
	"github.com/eunoia-app/eunoia-api/internal/utils"
)

// CourseHandler serves the course marketplace.
type CourseHandler struct {
	service service.CourseService
	logger  zerolog.Logger
}

// NewCourseHandler constructs the handler.
func NewCourseHandler(service service.CourseService, logger zerolog.Logger) *CourseHandler {
	return &CourseHandler{
		service: service,
		logger:  logger.With().Str("component", "course_handler").Logger(),
	}
}

// Register wires the course routes.
func (h *CourseHandler) Register(router fiber.Router) {
	router.Get("/featured", h.featured)
}

func (h *CourseHandler) featured(c *fiber.Ctx) error {
	result, err := h.service.Featured(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list featured courses")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list featured courses")
	}

	if result.CacheHit {
		c.Set("X-Cache-Hit", "true")
	} else {
		c.Set("X-Cache-Hit", "false")
	}

	return utils.SendSuccess(c, "courses retrieved", result)
}
