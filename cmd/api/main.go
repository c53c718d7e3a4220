package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deepakm/resumatch/internal/api"
	"github.com/deepakm/resumatch/internal/api/middleware"
	"github.com/deepakm/resumatch/internal/config"
	"github.com/deepakm/resumatch/internal/llm"
	"github.com/deepakm/resumatch/internal/logger"
	"github.com/deepakm/resumatch/internal/repository"
	"github.com/deepakm/resumatch/internal/service"
	"github.com/deepakm/resumatch/internal/storage"
)

func main() {
	appLogger := logger.New(logger.LoadFromEnv())
	logger.SetDefaultLogger(appLogger)
	defer logger.Sync()

	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}

	// Initialize database
	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}

	// Initialize repositories
	jdRepo := repository.NewJDRepository(db)
	resumeRepo := repository.NewResumeRepository(db)
	comparisonRepo := repository.NewComparisonRepository(db)
	workflowRepo := repository.NewWorkflowRepository(db)

	// Initialize result archive
	archive, err := storage.NewStorage(&cfg.Storage)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize storage")
	}
	if err := archive.EnsureBucket(context.Background()); err != nil {
		appLogger.WithError(err).Fatal("Failed to ensure storage bucket")
	}

	// Initialize completion client and pipeline
	completionClient := llm.NewClient(&llm.Config{
		Provider:   cfg.LLM.Provider,
		Model:      cfg.LLM.Model,
		APIKey:     cfg.LLM.APIKey,
		BaseURL:    cfg.LLM.BaseURL,
		Deployment: cfg.LLM.Deployment,
		APIVersion: cfg.LLM.APIVersion,
		Timeout:    cfg.LLM.Timeout,
		MaxTokens:  cfg.LLM.MaxTokens,
	})

	pipeline := service.NewPipeline(completionClient, appLogger)

	batch := service.NewBatchOrchestrator(
		pipeline,
		service.BatchStores{
			Comparisons: comparisonRepo,
			Workflows:   workflowRepo,
			JDs:         jdRepo,
			Resumes:     resumeRepo,
		},
		archive,
		appLogger,
		&service.BatchConfig{Workers: cfg.Batch.Workers},
	)

	workflowService := service.NewWorkflowService(workflowRepo, jdRepo, resumeRepo, batch, appLogger)

	// Setup router
	router := api.SetupRouter(workflowService, jdRepo, resumeRepo, comparisonRepo, appLogger, middleware.CORSConfig{
		AllowedOrigins:  cfg.Server.CORS.AllowedOrigins,
		AllowAllOrigins: cfg.Server.CORS.AllowAllOrigins,
	}, cfg.Server.Mode)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		appLogger.WithFields(logger.Fields{
			"port": cfg.Server.Port,
			"mode": cfg.Server.Mode,
		}).Info("Starting API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Fatal("Server forced to shutdown")
	}

	appLogger.Info("Server exited")
}
