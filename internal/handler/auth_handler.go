package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/eunoia-app/eunoia-api/internal/dto"
	"github.com/eunoia-app/eunoia-api/internal/service"
	"github.com/eunoia-app/eunoia-api/internal/utils"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register wires the auth routes.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/register", h.register)
	router.Post("/login", h.login)
}

func (h *AuthHandler) register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Register(c.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			return utils.SendError(c, fiber.StatusConflict, "email already registered")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, validationMessage(err))
		default:
			h.logger.Error().Err(err).Msg("registration failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "registration failed")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "account created", result)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Login(c.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid email or password")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, validationMessage(err))
		default:
			h.logger.Error().Err(err).Msg("login failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "login failed")
		}
	}

	return utils.SendSuccess(c, "logged in", result)
}

func isValidationError(err error) bool {
	var verrs validator.ValidationErrors
	return errors.As(err, &verrs)
}
