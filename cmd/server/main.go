package main

import (
	"log"
	"net/http"

	_ "orphancare/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"orphancare/internal/auth"
	"orphancare/internal/cache"
	"orphancare/internal/config"
	"orphancare/internal/db"
	"orphancare/internal/handler"
	"orphancare/internal/mail"
	"orphancare/internal/model"
	"orphancare/internal/repository"
	"orphancare/internal/router"
	"orphancare/internal/service"
)

// @title Orphanage Management API
// @version 1.0
// @description Orphanage management backend with email-verified login, children records and donations.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	// A missing signing secret is a deployment defect; refuse to start
	// rather than fall back to a known default.
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Child{},
		&model.Donation{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Mail transport self-check; a failure is a warning, not a startup error.
	mailer := mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	if err := mailer.Verify(); err != nil {
		log.Printf("Warning: mail transport verification failed: %v", err)
	} else {
		log.Println("Mail transport is ready to send messages")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	childRepo := repository.NewChildRepository(gormDB)
	donationRepo := repository.NewDonationRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, mailer, cacheClient, cfg.FrontendOrigin)
	userService := service.NewUserService(userRepo, cacheClient)
	childService := service.NewChildService(childRepo)
	donationService := service.NewDonationService(donationRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	childHandler := handler.NewChildHandler(childService)
	donationHandler := handler.NewDonationHandler(donationService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		userHandler,
		childHandler,
		donationHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
