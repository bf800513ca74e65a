package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/eunoia-app/eunoia-api/internal/service"
	"github.com/eunoia-app/eunoia-api/internal/utils"
)

// UploadHandler accepts media uploads.
type UploadHandler struct {
	service service.UploadService
	logger  zerolog.Logger
}

// NewUploadHandler constructs the handler.
func NewUploadHandler(service service.UploadService, logger zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		service: service,
		logger:  logger.With().Str("component", "upload_handler").Logger(),
	}
}

// Register wires the upload route.
func (h *UploadHandler) Register(router fiber.Router) {
	router.Post("/uploadFile", h.upload)
}

func (h *UploadHandler) upload(c *fiber.Ctx) error {
	if _, ok := callerFromContext(c); !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "file is required")
	}

	result, err := h.service.Upload(c.Context(), file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUploadTooLarge):
			return utils.SendError(c, fiber.StatusRequestEntityTooLarge, "file exceeds maximum allowed size")
		case errors.Is(err, service.ErrUploadTypeNotAllowed):
			return utils.SendError(c, fiber.StatusUnsupportedMediaType, "only image uploads are allowed")
		case errors.Is(err, service.ErrUploadMissing):
			return utils.SendError(c, fiber.StatusBadRequest, "file is required")
		default:
			h.logger.Error().Err(err).Msg("upload failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "upload failed")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "file uploaded", result)
}
