package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/wekeepgrowing/gov-budget-request-form/internal/adapter/repository"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/adapter/repository/memory"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/config"
	domainRepo "github.com/wekeepgrowing/gov-budget-request-form/internal/domain/repository"
)

// Store is the configured BudgetStore plus the connection it owns, if any.
type Store struct {
	BudgetStore domainRepo.BudgetStore
	DB          *gorm.DB
}

// NewStore connects and migrates the configured driver. The memory driver
// needs neither.
func NewStore(cfg *config.DatabaseConfig, logger *zap.Logger) (*Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		logger.Warn("Using in-memory store; data is lost on exit")
		return &Store{BudgetStore: memory.NewStore()}, nil
	case config.DriverPostgres:
		db, err := NewConnection(cfg, logger)
		if err != nil {
			return nil, err
		}
		if err := Migrate(db, logger); err != nil {
			_ = Close(db, logger)
			return nil, err
		}
		return &Store{BudgetStore: repository.NewBudgetStore(db, logger), DB: db}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Close releases the database connection.
func (s *Store) Close(logger *zap.Logger) error {
	if s.DB == nil {
		return nil
	}
	return Close(s.DB, logger)
}
