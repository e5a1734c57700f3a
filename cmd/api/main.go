package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-careers-backend/config"
	_ "go-careers-backend/docs" // Important for Swagger
	v1 "go-careers-backend/internal/delivery/http/v1"
	"go-careers-backend/internal/domain"
	"go-careers-backend/internal/repository/postgres"
	"go-careers-backend/internal/usecase"
	"go-careers-backend/pkg/antivirus"
	"go-careers-backend/pkg/audit"
	"go-careers-backend/pkg/database"
	"go-careers-backend/pkg/logger"
	"go-careers-backend/pkg/observability"
	"go-careers-backend/pkg/redis"
	"go-careers-backend/pkg/storage"
	"go-careers-backend/pkg/validation"
)

// @title           Careers Site API
// @version         1.0
// @description     Job postings, candidate profiles and job applications for the company careers site.
// @host            localhost:8080
// @BasePath        /
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting careers backend", "port", cfg.Port, "environment", cfg.Environment)

	auditLogger := audit.New(cfg.ServiceName, cfg.Environment)
	defer func() { _ = auditLogger.Sync() }()

	// 3. Setup Database
	ctx := context.Background()
	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if cfg.AutoMigrate {
		if err := postgres.Migrate(dbPool); err != nil {
			logger.Log.Error("Failed to run migrations", "error", err)
			os.Exit(1)
		}
		logger.Log.Info("Database schema up to date")
	}

	// 4. Optional infrastructure
	healthChecks := map[string]func(context.Context) error{}

	if cfg.UpstashRedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, rate limiting uses in-memory fallback", "error", err)
		} else {
			healthChecks["redis"] = redis.HealthCheck
			defer func() { _ = redis.Close() }()
		}
	}

	scanner := antivirus.New(cfg.ClamAVAddress, time.Duration(cfg.ClamAVTimeoutSeconds)*time.Second)
	if cfg.ClamAVAddress != "" {
		healthChecks["antivirus"] = func(ctx context.Context) error {
			if !scanner.Available(ctx) {
				return errors.New("clamd not reachable")
			}
			return nil
		}
	}
	logger.Log.Info("Resume scanner configured", "scanner", scanner.Name())

	var resumeBlobs domain.ResumeBlobStore
	if cfg.ResumeStorage == config.ResumeStorageS3 {
		s3Client, err := storage.NewS3Client(ctx, storage.S3ClientConfig{
			Provider:        storage.S3Provider(cfg.S3Provider),
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			Endpoint:        cfg.S3Endpoint,
		})
		if err != nil {
			logger.Log.Error("Failed to create S3 client", "error", err)
			os.Exit(1)
		}
		if err := storage.CheckBucket(ctx, s3Client, cfg.S3Bucket); err != nil {
			logger.Log.Error("Resume bucket not reachable", "bucket", cfg.S3Bucket, "error", err)
			os.Exit(1)
		}
		resumeBlobs = storage.NewResumeStore(s3Client, cfg.S3Bucket)
		logger.Log.Info("Resumes stored in object storage", "bucket", cfg.S3Bucket)
	}

	metricsHandler, shutdownMetrics, err := observability.InitMetrics()
	if err != nil {
		logger.Log.Error("Failed to initialise metrics", "error", err)
		os.Exit(1)
	}
	recorder, err := observability.NewRecorder()
	if err != nil {
		logger.Log.Error("Failed to create metric instruments", "error", err)
		os.Exit(1)
	}

	// 5. Setup Repositories
	jobRepo := postgres.NewJobRepository(dbPool)
	candidateRepo := postgres.NewCandidateRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)
	adminRepo := postgres.NewAdminRepository(dbPool)

	// 6. Setup UseCases
	validate := validation.New(cfg.AllowedEmailDomain)
	jobUC := usecase.NewJobUsecase(jobRepo, validate)
	candidateUC := usecase.NewCandidateUsecase(candidateRepo, resumeBlobs, scanner, validate, cfg.ResumeMaxBytes, auditLogger, recorder)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, validate, auditLogger, recorder)
	adminUC := usecase.NewAdminUsecase(adminRepo, jobRepo, applicationRepo)
	healthUC := usecase.NewHealthUsecase(dbPool, healthChecks)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		JobUC:          jobUC,
		CandidateUC:    candidateUC,
		ApplicationUC:  applicationUC,
		AdminUC:        adminUC,
		HealthUC:       healthUC,
		Config:         cfg,
		Audit:          auditLogger,
		MetricsHandler: metricsHandler,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}
	if err := shutdownMetrics(shutdownCtx); err != nil {
		logger.Log.Warn("Metrics shutdown failed", "error", err)
	}

	logger.Log.Info("Server exiting")
}
