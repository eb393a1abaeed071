package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wekeepgrowing/gov-budget-request-form/internal/domain/dto"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/domain/model"
	domainRepo "github.com/wekeepgrowing/gov-budget-request-form/internal/domain/repository"
)

// budgetStore implements the BudgetStore interface on gorm
type budgetStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewBudgetStore creates a new gorm-backed budget store
func NewBudgetStore(db *gorm.DB, logger *zap.Logger) domainRepo.BudgetStore {
	return &budgetStore{
		db:     db,
		logger: logger,
	}
}

// WithinTransaction runs fn inside a database transaction. Nested calls use
// a savepoint.
func (r *budgetStore) WithinTransaction(ctx context.Context, fn func(tx domainRepo.BudgetStore) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&budgetStore{db: tx, logger: r.logger})
	})
}

func (r *budgetStore) CreateRequest(ctx context.Context, req *model.BudgetRequest) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(req).Error; err != nil {
		return fmt.Errorf("failed to create budget request: %w", err)
	}
	return nil
}

func (r *budgetStore) GetRequest(ctx context.Context, id int64) (*model.BudgetRequest, error) {
	return r.getRequest(r.db.WithContext(ctx), id)
}

// GetRequestForUpdate takes a row lock held until the transaction ends
func (r *budgetStore) GetRequestForUpdate(ctx context.Context, id int64) (*model.BudgetRequest, error) {
	return r.getRequest(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *budgetStore) getRequest(db *gorm.DB, id int64) (*model.BudgetRequest, error) {
	var req model.BudgetRequest
	err := db.Where("id = ?", id).First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get budget request",
			zap.Int64("request_id", id),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get budget request: %w", err)
	}
	return &req, nil
}

func (r *budgetStore) SaveRequest(ctx context.Context, req *model.BudgetRequest) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(req).Error; err != nil {
		return fmt.Errorf("failed to save budget request: %w", err)
	}
	return nil
}

// DeleteRequest removes the request; items and files go with it through the
// ON DELETE CASCADE foreign keys.
func (r *budgetStore) DeleteRequest(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&model.BudgetRequest{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete budget request: %w", err)
	}
	return nil
}

func (r *budgetStore) ListRequests(ctx context.Context, filters dto.RequestFilters) ([]model.BudgetRequest, error) {
	var requests []model.BudgetRequest

	query := applyRequestFilters(r.db.WithContext(ctx).Model(&model.BudgetRequest{}), filters).
		Order("created_at DESC").
		Order("id DESC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("failed to list budget requests: %w", err)
	}
	return requests, nil
}

func (r *budgetStore) CountRequests(ctx context.Context, filters dto.RequestFilters) (int64, error) {
	var total int64
	if err := applyRequestFilters(r.db.WithContext(ctx).Model(&model.BudgetRequest{}), filters).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count budget requests: %w", err)
	}
	return total, nil
}

func applyRequestFilters(query *gorm.DB, filters dto.RequestFilters) *gorm.DB {
	if filters.DepartmentName != nil {
		query = query.Where("department_name = ?", *filters.DepartmentName)
	}
	if filters.FiscalYear != nil {
		query = query.Where("fiscal_year = ?", *filters.FiscalYear)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.PriorityLevel != nil {
		query = query.Where("priority_level = ?", *filters.PriorityLevel)
	}
	return query
}

func (r *budgetStore) CreateItem(ctx context.Context, item *model.BudgetItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("failed to create budget item: %w", err)
	}
	return nil
}

func (r *budgetStore) GetItem(ctx context.Context, id int64) (*model.BudgetItem, error) {
	var item model.BudgetItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get budget item: %w", err)
	}
	return &item, nil
}

func (r *budgetStore) SaveItem(ctx context.Context, item *model.BudgetItem) error {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return fmt.Errorf("failed to save budget item: %w", err)
	}
	return nil
}

func (r *budgetStore) DeleteItem(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&model.BudgetItem{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete budget item: %w", err)
	}
	return nil
}

func (r *budgetStore) ListItems(ctx context.Context, requestID int64) ([]model.BudgetItem, error) {
	items := make([]model.BudgetItem, 0)
	err := r.db.WithContext(ctx).
		Where("budget_request_id = ?", requestID).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list budget items: %w", err)
	}
	return items, nil
}

// SumItemCosts sums in the database so the result is exact decimal(15,2)
func (r *budgetStore) SumItemCosts(ctx context.Context, requestID int64) (decimal.Decimal, int64, error) {
	var result struct {
		Total decimal.Decimal
		Count int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.BudgetItem{}).
		Select("COALESCE(SUM(total_cost), 0) AS total, COUNT(*) AS count").
		Where("budget_request_id = ?", requestID).
		Scan(&result).Error
	if err != nil {
		r.logger.Error("Failed to sum budget item costs",
			zap.Int64("request_id", requestID),
			zap.Error(err))
		return decimal.Zero, 0, fmt.Errorf("failed to sum budget item costs: %w", err)
	}
	return result.Total, result.Count, nil
}

func (r *budgetStore) CreateFile(ctx context.Context, file *model.FileAttachment) error {
	if err := r.db.WithContext(ctx).Create(file).Error; err != nil {
		return fmt.Errorf("failed to create file attachment: %w", err)
	}
	return nil
}

func (r *budgetStore) GetFile(ctx context.Context, id int64) (*model.FileAttachment, error) {
	var file model.FileAttachment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&file).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get file attachment: %w", err)
	}
	return &file, nil
}

func (r *budgetStore) DeleteFile(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&model.FileAttachment{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete file attachment: %w", err)
	}
	return nil
}

func (r *budgetStore) ListFiles(ctx context.Context, requestID int64) ([]model.FileAttachment, error) {
	files := make([]model.FileAttachment, 0)
	err := r.db.WithContext(ctx).
		Where("budget_request_id = ?", requestID).
		Order("id ASC").
		Find(&files).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list file attachments: %w", err)
	}
	return files, nil
}
