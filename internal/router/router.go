package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/eunoia-app/eunoia-api/internal/config"
	"github.com/eunoia-app/eunoia-api/internal/handler"
	"github.com/eunoia-app/eunoia-api/internal/middleware"
	"github.com/eunoia-app/eunoia-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler   *handler.AuthHandler
	UserHandler   *handler.UserHandler
	EntityHandler *handler.EntityHandler
	LLMHandler    *handler.LLMHandler
	UploadHandler *handler.UploadHandler
	CourseHandler *handler.CourseHandler
	JWTMiddleware fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", observability.MetricsHandler())

	// Stored media is served directly from disk.
	app.Static("/api/uploads", cfg.UploadDir)

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuthHandler != nil {
		auth := app.Group("/api/auth", middleware.RateLimit("auth", 20, time.Minute))
		deps.AuthHandler.Register(auth)
	}

	if deps.UserHandler != nil {
		deps.UserHandler.Register(
			app.Group("/api/me", jwtMiddleware),
			app.Group("/api/users", jwtMiddleware),
		)
	}

	if deps.EntityHandler != nil {
		deps.EntityHandler.Register(app.Group("/api/entities", jwtMiddleware))
	}

	integrations := app.Group("/api/integrations/core", jwtMiddleware)
	if deps.LLMHandler != nil {
		deps.LLMHandler.Register(integrations)
	}
	if deps.UploadHandler != nil {
		deps.UploadHandler.Register(integrations)
	}

	if deps.CourseHandler != nil {
		deps.CourseHandler.Register(app.Group("/api/courses", jwtMiddleware))
	}
}
