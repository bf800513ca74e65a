package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/eunoia-app/eunoia-api/internal/dto"
	"github.com/eunoia-app/eunoia-api/internal/service"
	"github.com/eunoia-app/eunoia-api/internal/utils"
)

// LLMHandler exposes the model invocation endpoint.
type LLMHandler struct {
	service service.LLMService
	logger  zerolog.Logger
}

// NewLLMHandler constructs the handler.
func NewLLMHandler(service service.LLMService, logger zerolog.Logger) *LLMHandler {
	return &LLMHandler{
		service: service,
		logger:  logger.With().Str("component", "llm_handler").Logger(),
	}
}

// Register wires the invocation route.
func (h *LLMHandler) Register(router fiber.Router) {
	router.Post("/invokeLLM", h.invoke)
}

func (h *LLMHandler) invoke(c *fiber.Ctx) error {
	caller, ok := callerFromContext(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	var req dto.InvokeLLMRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Invoke(c.Context(), caller, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPromptRequired):
			return utils.SendError(c, fiber.StatusBadRequest, "prompt is required")
		case errors.Is(err, service.ErrChatQuotaExceeded):
			return utils.SendError(c, fiber.StatusTooManyRequests, "daily chat limit reached")
		case errors.Is(err, service.ErrUserNotFound):
			return utils.SendError(c, fiber.StatusUnauthorized, "account not found")
		default:
			h.logger.Error().Err(err).Msg("model invocation failed")
			return utils.SendError(c, fiber.StatusBadGateway, "model invocation failed")
		}
	}

	return utils.SendSuccess(c, "invocation completed", result)
}
