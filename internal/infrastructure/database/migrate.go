package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/wekeepgrowing/gov-budget-request-form/internal/domain/model"
)

// Migrate runs database migrations
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running database migrations...")

	// Parents first so the cascading foreign keys can be created
	err := db.AutoMigrate(
		&model.BudgetRequest{},
		&model.BudgetItem{},
		&model.FileAttachment{},
	)
	if err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return fmt.Errorf("failed to auto-migrate: %w", err)
	}

	logger.Info("Creating check constraints...")
	if err := createCheckConstraints(db); err != nil {
		logger.Error("Failed to create check constraints", zap.Error(err))
		return err
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// checkConstraints backs the validation rules at the database level
var checkConstraints = []struct {
	table string
	name  string
	expr  string
}{
	{"budget_requests", "chk_budget_requests_fiscal_year", "fiscal_year BETWEEN 2020 AND 2050"},
	{"budget_requests", "chk_budget_requests_status", "status IN ('draft', 'submitted', 'under_review', 'approved', 'rejected', 'revision_requested')"},
	{"budget_requests", "chk_budget_requests_priority", "priority_level IN ('low', 'medium', 'high', 'critical')"},
	{"budget_items", "chk_budget_items_unit_cost", "unit_cost > 0"},
	{"budget_items", "chk_budget_items_total_cost", "total_cost > 0"},
	{"budget_items", "chk_budget_items_quantity", "quantity IS NULL OR quantity > 0"},
	{"file_attachments", "chk_file_attachments_size", "file_size > 0 AND file_size <= 52428800"},
}

// createCheckConstraints adds constraints gorm cannot express in struct tags.
// total_amount has no constraint so a stored negative total can still be
// caught at submission.
func createCheckConstraints(db *gorm.DB) error {
	for _, c := range checkConstraints {
		stmt := fmt.Sprintf(`DO $$
BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = '%s') THEN
		ALTER TABLE %s ADD CONSTRAINT %s CHECK (%s);
	END IF;
END $$;`, c.name, c.table, c.name, c.expr)
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create constraint %s: %w", c.name, err)
		}
	}
	return nil
}
