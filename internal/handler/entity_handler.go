package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/eunoia-app/eunoia-api/internal/observability"
	"github.com/eunoia-app/eunoia-api/internal/service"
	"github.com/eunoia-app/eunoia-api/internal/utils"
)

// EntityHandler serves the generic record gateway plus the persona status
// probe that hangs off the ChatStyle routes.
type EntityHandler struct {
	entities service.EntityService
	styles   service.StyleService
	logger   zerolog.Logger
}

// NewEntityHandler constructs the handler.
func NewEntityHandler(entities service.EntityService, styles service.StyleService, logger zerolog.Logger) *EntityHandler {
	return &EntityHandler{
		entities: entities,
		styles:   styles,
		logger:   logger.With().Str("component", "entity_handler").Logger(),
	}
}

// Register wires the gateway routes. A single record is never fetched
// directly; the only GET with an id is the ChatStyle status probe, registered
// ahead of the generic routes so Fiber matches it first.
func (h *EntityHandler) Register(router fiber.Router) {
	router.Get("/ChatStyle/:id", h.styleStatus)
	router.Get("/:entity", h.list)
	router.Post("/:entity", h.create)
	router.Put("/:entity/:id", h.update)
	router.Delete("/:entity/:id", h.remove)
}

func (h *EntityHandler) list(c *fiber.Ctx) error {
	caller, ok := callerFromContext(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}
	name := c.Params("entity")

	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}

	rows, err := h.entities.List(c.Context(), caller, name, service.ListQuery{
		Order: c.Query("order"),
		Limit: limit,
	})
	if err != nil {
		return h.fail(c, name, "list", err)
	}

	observability.EntityOps().WithLabelValues(name, "list", "ok").Inc()
	return utils.SendSuccess(c, "records retrieved", rows)
}

func (h *EntityHandler) create(c *fiber.Ctx) error {
	caller, ok := callerFromContext(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}
	name := c.Params("entity")

	var payload map[string]any
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	row, err := h.entities.Create(c.Context(), caller, name, payload)
	if err != nil {
		return h.fail(c, name, "create", err)
	}

	observability.EntityOps().WithLabelValues(name, "create", "ok").Inc()
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "record created", row)
}

func (h *EntityHandler) update(c *fiber.Ctx) error {
	caller, ok := callerFromContext(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}
	name := c.Params("entity")

	id, err := parsePathID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	var payload map[string]any
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	row, err := h.entities.Update(c.Context(), caller, name, id, payload)
	if err != nil {
		return h.fail(c, name, "update", err)
	}

	observability.EntityOps().WithLabelValues(name, "update", "ok").Inc()
	return utils.SendSuccess(c, "record updated", row)
}

func (h *EntityHandler) remove(c *fiber.Ctx) error {
	caller, ok := callerFromContext(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}
	name := c.Params("entity")

	id, err := parsePathID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	if err := h.entities.Delete(c.Context(), caller, name, id); err != nil {
		return h.fail(c, name, "delete", err)
	}

	observability.EntityOps().WithLabelValues(name, "delete", "ok").Inc()
	return utils.SendNoContent(c)
}

func (h *EntityHandler) styleStatus(c *fiber.Ctx) error {
	caller, ok := callerFromContext(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid id")
	}

	status, err := h.styles.Status(c.Context(), caller, id)
	if err != nil {
		h.logger.Error().Err(err).Uint("style_id", id).Msg("status check failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "status check failed")
	}

	return utils.SendSuccess(c, "status retrieved", status)
}

func (h *EntityHandler) fail(c *fiber.Ctx, name, operation string, err error) error {
	switch {
	case errors.Is(err, service.ErrUnknownEntity):
		observability.EntityOps().WithLabelValues(name, operation, "unknown").Inc()
		return utils.SendError(c, fiber.StatusNotFound, "unknown entity type")
	case errors.Is(err, service.ErrRecordNotFound):
		observability.EntityOps().WithLabelValues(name, operation, "not_found").Inc()
		return utils.SendError(c, fiber.StatusNotFound, "record not found")
	case errors.Is(err, service.ErrReportQuotaExceeded):
		observability.EntityOps().WithLabelValues(name, operation, "quota").Inc()
		return utils.SendError(c, fiber.StatusTooManyRequests, "daily report limit reached")
	case errors.Is(err, service.ErrUserNotFound):
		observability.EntityOps().WithLabelValues(name, operation, "error").Inc()
		return utils.SendError(c, fiber.StatusUnauthorized, "account not found")
	default:
		observability.EntityOps().WithLabelValues(name, operation, "error").Inc()
		h.logger.Error().Err(err).Str("entity", name).Str("operation", operation).Msg("entity operation failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "operation failed")
	}
}
