package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/gov-budget-request-form/internal/adapter/export"
	handlers "github.com/wekeepgrowing/gov-budget-request-form/internal/adapter/handler/http"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/adapter/storage"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/config"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/domain/policy"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/infrastructure/database"
	httpServer "github.com/wekeepgrowing/gov-budget-request-form/internal/infrastructure/http"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/infrastructure/metrics"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/usecase"
	"github.com/wekeepgrowing/gov-budget-request-form/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	zapLogger, err := logger.NewZapLogger(cfg.Log.Logger())
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	// Initialize store (connects and migrates for postgres)
	store, err := database.NewStore(&cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to initialize store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(zapLogger); err != nil {
			zapLogger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	files, err := storage.NewLocalFileStore(cfg.Storage.UploadDir)
	if err != nil {
		zapLogger.Fatal("Failed to initialize file store", zap.Error(err))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewRecorder(registry)

	statusPolicy := policy.New(cfg.Policy.StrictMetadata)
	usecases := usecase.NewUsecases(store.BudgetStore, files, statusPolicy, export.NewWorkbookWriter(), recorder, zapLogger)

	httpSrv := httpServer.NewServer(cfg, zapLogger, &handlers.Handlers{
		Requests: handlers.NewRequestHandler(usecases.Requests, usecases.Exports, zapLogger),
		Items:    handlers.NewItemHandler(usecases.Items, zapLogger),
		Files:    handlers.NewFileHandler(usecases.Files, files, zapLogger),
	}, registry)

	go func() {
		if err := httpSrv.Start(); err != nil {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		zapLogger.Error("Failed to shutdown HTTP server", zap.Error(err))
	}

	zapLogger.Info("Server shut down successfully",
		zap.String("service", cfg.Service.Name),
		zap.Bool("strict_metadata", cfg.Policy.StrictMetadata))
}
