package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"authapi/internal/config"
	"authapi/internal/database"
	"authapi/internal/middleware"
	"authapi/internal/modules/auth"
	"authapi/internal/modules/profile"
	jwtpkg "authapi/internal/pkg/jwt"
	"authapi/internal/repository"
	"authapi/internal/sweeper"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	refreshRepo := repository.NewRefreshTokenRepository(db)
	blacklistRepo := repository.NewBlacklistRepository(db)

	tokens := jwtpkg.NewManager(cfg.AccessSecret, cfg.RefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)

	authService := auth.NewService(userRepo, refreshRepo, blacklistRepo, tokens, cfg.BcryptCost)
	authHandler := auth.NewHandler(authService)

	profileService := profile.NewService(userRepo)
	profileHandler := profile.NewHandler(profileService)

	sw := sweeper.New(refreshRepo, blacklistRepo, cfg.CleanupInterval)
	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	go sw.Run(sweepCtx)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.Auth(authService))
		{
			authHandler.RegisterProtectedRoutes(protected)
			profileHandler.RegisterProtectedRoutes(protected)
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
