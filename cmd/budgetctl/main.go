// Command budgetctl runs maintenance tasks against the budget request store.
package main

import (
	"log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/gov-budget-request-form/internal/adapter/export"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/adapter/storage"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/config"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/domain/policy"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/infrastructure/database"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/usecase"
	"github.com/wekeepgrowing/gov-budget-request-form/pkg/logger"
)

// app is built once per invocation by the root command.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	store    *database.Store
	usecases *usecase.Usecases
}

var current app

var (
	seedFile  string
	exportID  int64
	exportOut string

	rootCmd = &cobra.Command{
		Use:               "budgetctl",
		Short:             "Maintenance tasks for the budget request service",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: teardown,
	}

	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE:  runMigrate, // Defined in cmd_migrate.go
	}

	seedCmd = &cobra.Command{
		Use:   "seed",
		Short: "Create budget requests and items from a YAML fixture file",
		RunE:  runSeed, // Defined in cmd_seed.go
	}

	exportCmd = &cobra.Command{
		Use:   "export",
		Short: "Write a budget request and its items to an .xlsx workbook",
		RunE:  runExport, // Defined in cmd_export.go
	}
)

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "fixture file")
	_ = seedCmd.MarkFlagRequired("file")

	exportCmd.Flags().Int64Var(&exportID, "id", 0, "budget request id")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output path (default budget-request-<id>.xlsx)")
	_ = exportCmd.MarkFlagRequired("id")

	rootCmd.AddCommand(migrateCmd, seedCmd, exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error executing command: %v", err)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	zapLogger, err := logger.NewZapLogger(cfg.Log.Logger())
	if err != nil {
		return err
	}

	store, err := database.NewStore(&cfg.Database, zapLogger)
	if err != nil {
		return err
	}

	files, err := storage.NewLocalFileStore(cfg.Storage.UploadDir)
	if err != nil {
		return err
	}

	current = app{
		cfg:    cfg,
		logger: zapLogger,
		store:  store,
		usecases: usecase.NewUsecases(store.BudgetStore, files, policy.New(cfg.Policy.StrictMetadata),
			export.NewWorkbookWriter(), nil, zapLogger),
	}
	return nil
}

func teardown(cmd *cobra.Command, args []string) {
	if current.store != nil {
		if err := current.store.Close(current.logger); err != nil {
			current.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}
	if current.logger != nil {
		_ = current.logger.Sync()
	}
}
