package main

import (
	"context"
	"log"
	"net/http"

	_ "feedbackhub/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"feedbackhub/internal/auth"
	"feedbackhub/internal/cache"
	"feedbackhub/internal/config"
	"feedbackhub/internal/db"
	"feedbackhub/internal/events"
	"feedbackhub/internal/handler"
	"feedbackhub/internal/model"
	"feedbackhub/internal/repository"
	"feedbackhub/internal/router"
	"feedbackhub/internal/service"
)

// @title Feedback Collection API
// @version 1.0
// @description Public feedback submission with a token-protected admin API for statistics and recent entries.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.Feedback{},
		&model.AdminUser{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	feedbackRepo := repository.NewFeedbackRepository(gormDB)
	adminRepo := repository.NewAdminUserRepository(gormDB)

	// Initialize auth and event components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	publisher := events.NewRedisPublisher(cacheClient)

	// Initialize services
	authService := service.NewAuthService(adminRepo, jwtService)
	feedbackService := service.NewFeedbackService(feedbackRepo, publisher, cacheClient)

	// Provision the admin account before accepting any request. Upsert keyed
	// on username, so restarts are safe.
	if err := authService.Bootstrap(context.Background(), cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatalf("bootstrap admin account: %v", err)
	}

	// Initialize handlers
	feedbackHandler := handler.NewFeedbackHandler(feedbackService)
	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminHandler(feedbackService)

	// Register routes
	router.Register(
		e,
		jwtService,
		feedbackHandler,
		authHandler,
		adminHandler,
	)

	// Log swagger full path
	swaggerURL := "http://localhost:" + cfg.ServerPort + "/swagger/index.html"
	if cfg.SwaggerHost != "" {
		swaggerURL = cfg.SwaggerHost + "/swagger/index.html"
	}
	log.Printf("Swagger documentation available at: %s", swaggerURL)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
