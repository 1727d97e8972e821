package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"shelfmark/database"
	"shelfmark/internal/cache"
	"shelfmark/internal/config"
	"shelfmark/internal/http-api/handler"
	"shelfmark/internal/http-api/middleware"
	"shelfmark/internal/http-api/repository"
	"shelfmark/internal/http-api/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	bookCache, err := cache.NewBookCache(cfg.RedisAddr, cfg.RedisPassword, time.Duration(cfg.CacheTTL)*time.Second)
	if err != nil {
		// the cache is an accelerator, not a dependency
		logger.Warn("redis unavailable, catalog cache disabled", "error", err)
		bookCache = nil
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	bookRepo := repository.NewBookRepository(db)
	collectionRepo := repository.NewCollectionRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	flashcardRepo := repository.NewFlashcardRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	bookService := service.NewBookService(bookRepo, collectionRepo, bookCache)
	collectionService := service.NewCollectionService(collectionRepo, bookRepo)
	quoteService := service.NewQuoteService(quoteRepo, collectionRepo)
	flashcardService := service.NewFlashcardService(flashcardRepo, collectionRepo)
	reviewService := service.NewReviewService(reviewRepo, bookRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	bookHandler := handler.NewBookHandler(bookService)
	collectionHandler := handler.NewCollectionHandler(collectionService)
	quoteHandler := handler.NewQuoteHandler(quoteService)
	flashcardHandler := handler.NewFlashcardHandler(flashcardService)
	reviewHandler := handler.NewReviewHandler(reviewService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.GET("/check-conn", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "API is alive and database connected"})
	})

	requireAuth := middleware.AuthMiddleware(authService)
	optionalAuth := middleware.OptionalAuthMiddleware(authService)
	loginLimiter := middleware.NewLoginLimiter(10, 5)

	api := r.Group("/api")
	{
		authHandler.RegisterRoutes(api, loginLimiter.Middleware(), requireAuth)
		bookHandler.RegisterRoutes(api, requireAuth)
		reviewHandler.RegisterRoutes(api, requireAuth, optionalAuth)

		user := api.Group("/user", requireAuth)
		{
			collectionHandler.RegisterRoutes(user)
			quoteHandler.RegisterRoutes(user)
			flashcardHandler.RegisterRoutes(user)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("starting http server", "addr", addr, "env", cfg.GoEnv)
	if err := r.Run(addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
