package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/wekeepgrowing/gov-budget-request-form/internal/domain/dto"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/domain/model"
)

// BudgetRequestRepository defines the interface for budget request data access.
// Get methods return nil, nil when the row does not exist.
type BudgetRequestRepository interface {
	CreateRequest(ctx context.Context, req *model.BudgetRequest) error
	GetRequest(ctx context.Context, id int64) (*model.BudgetRequest, error)
	// GetRequestForUpdate reads the row and locks it until the surrounding
	// transaction ends.
	GetRequestForUpdate(ctx context.Context, id int64) (*model.BudgetRequest, error)
	SaveRequest(ctx context.Context, req *model.BudgetRequest) error
	// DeleteRequest removes the request together with its items and files.
	DeleteRequest(ctx context.Context, id int64) error
	ListRequests(ctx context.Context, filters dto.RequestFilters) ([]model.BudgetRequest, error)
	CountRequests(ctx context.Context, filters dto.RequestFilters) (int64, error)
}

// BudgetItemRepository defines the interface for budget item data access
type BudgetItemRepository interface {
	CreateItem(ctx context.Context, item *model.BudgetItem) error
	GetItem(ctx context.Context, id int64) (*model.BudgetItem, error)
	SaveItem(ctx context.Context, item *model.BudgetItem) error
	DeleteItem(ctx context.Context, id int64) error
	ListItems(ctx context.Context, requestID int64) ([]model.BudgetItem, error)
	// SumItemCosts returns the exact sum of total_cost and the item count.
	SumItemCosts(ctx context.Context, requestID int64) (decimal.Decimal, int64, error)
}

// FileAttachmentRepository defines the interface for attachment metadata access
type FileAttachmentRepository interface {
	CreateFile(ctx context.Context, file *model.FileAttachment) error
	GetFile(ctx context.Context, id int64) (*model.FileAttachment, error)
	DeleteFile(ctx context.Context, id int64) error
	ListFiles(ctx context.Context, requestID int64) ([]model.FileAttachment, error)
}

// BudgetStore groups the repositories behind one transaction boundary.
type BudgetStore interface {
	BudgetRequestRepository
	BudgetItemRepository
	FileAttachmentRepository

	// WithinTransaction runs fn against a store bound to a single
	// transaction. The transaction commits when fn returns nil and rolls
	// back otherwise.
	WithinTransaction(ctx context.Context, fn func(tx BudgetStore) error) error
}
