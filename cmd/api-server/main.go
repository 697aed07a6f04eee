package main

import (
	"fmt"
	"log/slog"
	"os"

	"emurebook/database"
	"emurebook/internal/cache"
	"emurebook/internal/config"
	"emurebook/internal/http-api/handler"
	"emurebook/internal/http-api/repository"
	"emurebook/internal/http-api/service"
	"emurebook/internal/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	db, err := database.ConnectDB(cfg, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	// The category cache is best effort; the API serves from Postgres when
	// Redis is unreachable.
	categoryCache, err := cache.NewCategoryCache(cfg.RedisURL, cfg.CacheTTL, log)
	if err != nil {
		log.Warn("category cache disabled", "error", err)
	}

	userRepo := repository.NewUserRepository(db)
	bookRepo := repository.NewBookRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	authService := service.NewAuthService(userRepo, cfg)
	bookService := service.NewBookService(bookRepo, ratingRepo, favoriteRepo, categoryCache)
	messageService := service.NewMessageService(messageRepo, userRepo)
	userService := service.NewUserService(userRepo, favoriteRepo)

	router := handler.NewRouter(cfg, authService, bookService, messageService, userService, userRepo)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	log.Info("starting HTTP server", "addr", addr, "env", cfg.GoEnv)
	if err := router.Run(addr); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
