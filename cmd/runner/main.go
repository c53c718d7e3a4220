package main

import (
	"context"
	"errors"
	"flag"

	"github.com/deepakm/resumatch/internal/config"
	"github.com/deepakm/resumatch/internal/domain"
	"github.com/deepakm/resumatch/internal/llm"
	"github.com/deepakm/resumatch/internal/logger"
	"github.com/deepakm/resumatch/internal/repository"
	"github.com/deepakm/resumatch/internal/service"
	"github.com/deepakm/resumatch/internal/storage"
)

// The runner drives a single workflow to completion from the command line,
// for operators re-running a workflow outside the API.
func main() {
	appLogger := logger.New(&logger.Config{
		Level:       "info",
		Format:      "text",
		ServiceName: "resumatch-runner",
	})
	logger.SetDefaultLogger(appLogger)
	defer logger.Sync()

	workflowID := flag.String("workflow", "", "Workflow ID to run")
	configPath := flag.String("config", "", "Path to config file")
	workers := flag.Int("workers", 0, "Worker pool size override")
	flag.Parse()

	if *workflowID == "" {
		appLogger.Fatal("Workflow ID not provided (-workflow)")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}

	if *workers > 0 {
		cfg.Batch.Workers = *workers
	}

	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}

	jdRepo := repository.NewJDRepository(db)
	resumeRepo := repository.NewResumeRepository(db)
	comparisonRepo := repository.NewComparisonRepository(db)
	workflowRepo := repository.NewWorkflowRepository(db)

	archive, err := storage.NewStorage(&cfg.Storage)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize storage")
	}
	if err := archive.EnsureBucket(context.Background()); err != nil {
		appLogger.WithError(err).Fatal("Failed to ensure storage bucket")
	}

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

	ctx := context.Background()
	results, elapsed, err := workflowService.Run(ctx, *workflowID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWorkflowNotFound):
			appLogger.WithField(logger.FieldWorkflowID, *workflowID).Fatal("Workflow not found")
		case errors.Is(err, service.ErrNoData):
			appLogger.WithField(logger.FieldWorkflowID, *workflowID).Fatal("Workflow has no data to process")
		default:
			appLogger.WithError(err).Fatal("Workflow run failed")
		}
	}

	best := 0
	for _, r := range results {
		if r.FitCategory == domain.FitBest {
			best++
		}
	}

	appLogger.WithFields(logger.Fields{
		logger.FieldWorkflowID: *workflowID,
		logger.FieldCount:      len(results),
		logger.FieldDurationMs: elapsed,
		"best_fit":             best,
	}).Info("Workflow run finished")
}
