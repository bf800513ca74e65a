package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/eunoia-app/eunoia-api/internal/config"
	"github.com/eunoia-app/eunoia-api/internal/database"
	"github.com/eunoia-app/eunoia-api/internal/handler"
	"github.com/eunoia-app/eunoia-api/internal/middleware"
	"github.com/eunoia-app/eunoia-api/internal/models"
	"github.com/eunoia-app/eunoia-api/internal/repository"
	"github.com/eunoia-app/eunoia-api/internal/router"
	"github.com/eunoia-app/eunoia-api/internal/service"
	"github.com/eunoia-app/eunoia-api/pkg/ai"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Favorite{},
		&models.Notification{},
		&models.ChatHistory{},
		&models.ChatStyle{},
		&models.EmotionReport{},
		&models.TrendAnalysis{},
		&models.Course{},
		&models.LLMInvocation{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, course cache disabled")
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	llmClient, err := ai.NewOpenAIClient(ai.ClientConfig{
		APIKey:  cfg.LLMAPIKey,
		BaseURL: cfg.LLMBaseURL,
		Model:   cfg.LLMModel,
		Logger:  logger,
	})
	if err != nil {
		log.Fatalf("failed to create llm client: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	entityRepo := repository.NewEntityRepository(db)
	styleRepo := repository.NewStyleRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	analysisRepo := repository.NewAnalysisRepository(db)
	invocationRepo := repository.NewLLMInvocationRepository(db)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, logger)
	userService := service.NewUserService(userRepo, logger)
	usageService := service.NewUsageService(userRepo, logger)
	llmService := service.NewLLMService(llmClient, usageService, invocationRepo, logger)
	analysisService := service.NewAnalysisService(analysisRepo, llmService, logger)
	styleService := service.NewStyleService(styleRepo, logger)
	entityService := service.NewEntityService(entityRepo, styleService, usageService, analysisService, logger)
	uploadService := service.NewUploadService(service.DiskStorage{Dir: cfg.UploadDir}, 10, logger)
	courseService := service.NewCourseService(courseRepo, redisClient, cfg.CourseCacheTTL, logger)
	seedService := service.NewSeedService(courseRepo, styleRepo, logger)

	if err := seedService.Run(context.Background()); err != nil {
		logger.Warn().Err(err).Msg("seeding failed")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		BodyLimit:    12 * 1024 * 1024,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:   handler.NewAuthHandler(authService, logger),
		UserHandler:   handler.NewUserHandler(userService, logger),
		EntityHandler: handler.NewEntityHandler(entityService, styleService, logger),
		LLMHandler:    handler.NewLLMHandler(llmService, logger),
		UploadHandler: handler.NewUploadHandler(uploadService, logger),
		CourseHandler: handler.NewCourseHandler(courseService, logger),
		JWTMiddleware: middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
