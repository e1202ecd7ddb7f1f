package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/sobirov-abdujalil/abdujalil-portfolio/config"
	_ "github.com/sobirov-abdujalil/abdujalil-portfolio/docs" // Important for Swagger
	v1 "github.com/sobirov-abdujalil/abdujalil-portfolio/internal/delivery/http/v1"
	"github.com/sobirov-abdujalil/abdujalil-portfolio/internal/domain"
	"github.com/sobirov-abdujalil/abdujalil-portfolio/internal/repository/disk"
	"github.com/sobirov-abdujalil/abdujalil-portfolio/internal/repository/memory"
	"github.com/sobirov-abdujalil/abdujalil-portfolio/internal/repository/postgres"
	redisrepo "github.com/sobirov-abdujalil/abdujalil-portfolio/internal/repository/redis"
	"github.com/sobirov-abdujalil/abdujalil-portfolio/internal/usecase"
	"github.com/sobirov-abdujalil/abdujalil-portfolio/pkg/database"
	"github.com/sobirov-abdujalil/abdujalil-portfolio/pkg/email"
	"github.com/sobirov-abdujalil/abdujalil-portfolio/pkg/logger"
	"github.com/sobirov-abdujalil/abdujalil-portfolio/pkg/progress"
	"github.com/sobirov-abdujalil/abdujalil-portfolio/pkg/redis"
	"github.com/sobirov-abdujalil/abdujalil-portfolio/pkg/validation"
)

// @title           Portfolio Backend API
// @version         1.0
// @description     Backend for the portfolio site: pricing catalog, cost estimator wizard and contact inquiry flow.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting portfolio backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional; in-memory fallbacks cover its absence)
	sessionTTL := time.Duration(cfg.SessionTTLMinutes) * time.Minute
	handoffTTL := time.Duration(cfg.HandoffTTLMinutes) * time.Minute

	var handoffStore domain.HandoffStore
	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, using in-memory hand-off store", "error", err)
		}
	}
	if redis.IsAvailable() {
		handoffStore = redisrepo.NewHandoffStore(redis.Client(), handoffTTL)
	} else {
		handoffStore = memory.NewHandoffStore(handoffTTL)
	}
	defer redis.Close()

	// 5. Setup Repositories and Stores
	catalogRepo := memory.NewCatalogRepository()
	estimateSessionStore := memory.NewEstimateSessionStore(sessionTTL)
	inquirySessionStore := memory.NewInquirySessionStore(sessionTTL)
	estimateRepo := postgres.NewEstimateRepository(dbPool)
	inquiryRepo := postgres.NewInquiryRepository(dbPool)

	attachmentStore, err := disk.NewAttachmentStore(cfg.UploadDir)
	if err != nil {
		logger.Log.Error("Failed to prepare upload directory", "error", err)
		os.Exit(1)
	}

	// 6. Setup Email Service
	emailService := email.NewService(email.Config{
		Host:      cfg.SMTPHost,
		Port:      cfg.SMTPPort,
		Username:  cfg.SMTPUsername,
		Password:  cfg.SMTPPassword,
		FromEmail: cfg.SMTPFromEmail,
		ToEmail:   cfg.InquiryEmailTo,
	})
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - inquiry submission will be unavailable")
	}

	// 7. Setup UseCases
	validate := validator.New()
	validation.RegisterValidators(validate)

	catalogUC := usecase.NewCatalogUsecase(catalogRepo)
	estimatorUC := usecase.NewEstimatorUsecase(estimateSessionStore, catalogRepo, handoffStore, estimateRepo)
	inquiryUC := usecase.NewInquiryUsecase(
		inquirySessionStore,
		handoffStore,
		attachmentStore,
		inquiryRepo,
		emailService,
		validate,
		progress.Slog(logger.Log),
		domain.ResetPolicy(cfg.InquiryResetPolicy),
	)
	healthUC := usecase.NewHealthUsecase(dbPool)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		CatalogUC:   catalogUC,
		EstimatorUC: estimatorUC,
		InquiryUC:   inquiryUC,
		HealthUC:    healthUC,
		Config:      cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exited")
}
