package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/eunoia-app/eunoia-api/internal/dto"
	"github.com/eunoia-app/eunoia-api/internal/service"
	"github.com/eunoia-app/eunoia-api/internal/utils"
)

// UserHandler handles the authenticated profile and public account lookups.
type UserHandler struct {
	service service.UserService
	logger  zerolog.Logger
}

// NewUserHandler constructs the handler.
func NewUserHandler(service service.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger.With().Str("component", "user_handler").Logger(),
	}
}

// Register wires the profile routes and the public account lookup onto their
// authenticated groups.
func (h *UserHandler) Register(me fiber.Router, users fiber.Router) {
	me.Get("", h.me)
	me.Put("", h.updateMe)
	users.Get("/by-email/:email", h.byEmail)
}

func (h *UserHandler) me(c *fiber.Ctx) error {
	caller, ok := callerFromContext(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	result, err := h.service.Me(c.Context(), caller.ID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "user not found")
		}
		h.logger.Error().Err(err).Msg("failed to load profile")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load profile")
	}

	return utils.SendSuccess(c, "profile retrieved", result)
}

func (h *UserHandler) updateMe(c *fiber.Ctx) error {
	caller, ok := callerFromContext(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.UpdateMe(c.Context(), caller.ID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "user not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, validationMessage(err))
		default:
			h.logger.Error().Err(err).Msg("failed to update profile")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update profile")
		}
	}

	return utils.SendSuccess(c, "profile updated", result)
}

func (h *UserHandler) byEmail(c *fiber.Ctx) error {
	email := c.Params("email")
	result, err := h.service.GetByEmail(c.Context(), email)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "user not found")
		}
		h.logger.Error().Err(err).Msg("failed to look up user")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to look up user")
	}

	return utils.SendSuccess(c, "user retrieved", result)
}
