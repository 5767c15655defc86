package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/robfig/cron/v3"
	_ "github.com/skillhub/backend/docs"
	authmw "github.com/skillhub/backend/internal/auth/middleware"
	"github.com/skillhub/backend/internal/auth/service"
	"github.com/skillhub/backend/internal/config"
	"github.com/skillhub/backend/internal/database"
	"github.com/skillhub/backend/internal/handlers"
	"github.com/skillhub/backend/internal/jobs"
	"github.com/skillhub/backend/internal/logger"
	loggerMiddleware "github.com/skillhub/backend/internal/logger/middleware"
	"github.com/skillhub/backend/internal/middlewares"
	"github.com/skillhub/backend/internal/repositories"
	"github.com/skillhub/backend/internal/services"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// @title SkillHub API
// @version 1.0
// @description Learning roadmaps, authentication and step-completion tracking

// @host localhost:5000
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting SkillHub API")

	// Connect to database
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := database.Migrate(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	tokenGenerator := service.NewTokenGenerator(cfg.JWT.Secret, cfg.JWT.TokenExpiry)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, logger.Logger)
	progressRepo := repositories.NewProgressRepository(db, logger.Logger)
	contentRepo := repositories.NewContentRepository(db, logger.Logger)
	reviewRepo := repositories.NewReviewRepository(db, logger.Logger)

	// Initialize services
	authService := services.NewAuthService(userRepo, progressRepo, tokenGenerator, logger.Logger)
	progressService := services.NewProgressService(progressRepo, logger.Logger)
	contentService := services.NewContentService(contentRepo, reviewRepo, logger.Logger)

	// Content sync
	scheduler := cron.New()
	if cfg.Seed.File != "" {
		contentSync := jobs.NewContentSync(contentService, cfg.Seed.File, logger.Logger)
		result, err := contentSync.Run(context.Background())
		if err != nil {
			logger.Logger.Fatal("Failed to sync content", zap.Error(err))
		}
		logger.Logger.Info("Content synced",
			zap.String("file", cfg.Seed.File),
			zap.Int("contents", result.Contents),
			zap.Int("steps", result.Steps),
			zap.Int("reviewsCreated", result.ReviewsCreated),
		)

		if cfg.Seed.Schedule != "" {
			if err := contentSync.Schedule(scheduler, cfg.Seed.Schedule); err != nil {
				logger.Logger.Fatal("Failed to schedule content sync", zap.Error(err))
			}
			next, _ := jobs.NextRun(cfg.Seed.Schedule, time.Now())
			logger.Logger.Info("Content sync scheduled",
				zap.String("schedule", cfg.Seed.Schedule),
				zap.Time("nextRun", next),
			)
		}
	}
	scheduler.Start()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, logger.Logger)
	progressHandler := handlers.NewProgressHandler(progressService, logger.Logger)
	contentHandler := handlers.NewContentHandler(contentService, logger.Logger)

	authMiddleware := authmw.AuthMiddleware(tokenGenerator, userRepo, logger.Logger)

	// Setup router
	r := chi.NewRouter()

	r.Use(middlewares.RequestIDMiddleware)
	r.Use(loggerMiddleware.LoggerMiddleware(logger.Logger))
	r.Use(middlewares.RecoveryMiddleware(logger.Logger))
	r.Use(middlewares.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(cfg.RateLimit.RequestsPerMinute, time.Minute))
	r.Use(middlewares.RequestSizeLimitMiddleware(1 << 20)) // 1MB

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	r.Route("/api", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authMiddleware)
		progressHandler.RegisterRoutes(r, authMiddleware)
		contentHandler.RegisterRoutes(r)
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Wait for a running sync before the pool closes
	<-scheduler.Stop().Done()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}
