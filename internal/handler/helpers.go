package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/eunoia-app/eunoia-api/internal/service"
)

// callerFromContext reads the authenticated account set by the JWT middleware.
func callerFromContext(c *fiber.Ctx) (service.Caller, bool) {
	id, ok := c.Locals("user_id").(uint)
	if !ok {
		return service.Caller{}, false
	}
	email, ok := c.Locals("user_email").(string)
	if !ok || email == "" {
		return service.Caller{}, false
	}
	return service.Caller{ID: id, Email: email}, true
}

func parsePathID(c *fiber.Ctx, name string) (uint, error) {
	raw := strings.TrimSpace(c.Params(name))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

func parseQueryInt(c *fiber.Ctx, name string) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	switch strings.ToLower(raw) {
	case "", "undefined", "null":
		return 0, nil
	}
	return strconv.Atoi(raw)
}

// validationMessage flattens a validator error into a short client message.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		field := strings.ToLower(verrs[0].Field())
		return field + " is invalid"
	}
	return "invalid request"
}
