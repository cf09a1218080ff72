package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"coinvault/internal/auth"
	"coinvault/internal/cache"
	"coinvault/internal/config"
	"coinvault/internal/db"
	"coinvault/internal/handler"
	"coinvault/internal/model"
	"coinvault/internal/repository"
	"coinvault/internal/router"
	"coinvault/internal/service"
)

// @title Coinvault Game API
// @version 1.0
// @description Mobile game backend with registration, profile sync and a global leaderboard.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Profile{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Profile{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	profileRepo := repository.NewProfileRepository(gormDB)

	// Initialize auth components
	tokenService := auth.NewTokenService(cfg.SecretKey, time.Duration(cfg.TokenMaxAge)*time.Second)

	// Initialize services
	authService := service.NewAuthService(userRepo, tokenService)
	profileService := service.NewProfileService(profileRepo, cacheClient)
	leaderboardService := service.NewLeaderboardService(profileRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, profileService)
	profileHandler := handler.NewProfileHandler(profileService)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardService)

	// Register routes
	router.Register(
		e,
		authService,
		authHandler,
		profileHandler,
		leaderboardHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
