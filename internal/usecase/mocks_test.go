package usecase

import (
	"context"
	"io"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/wekeepgrowing/gov-budget-request-form/internal/domain/dto"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/domain/model"
	domainRepo "github.com/wekeepgrowing/gov-budget-request-form/internal/domain/repository"
)

// MockBudgetStore is a mock implementation of BudgetStore. Transactions run
// fn against the mock itself.
type MockBudgetStore struct {
	mock.Mock
}

func (m *MockBudgetStore) WithinTransaction(ctx context.Context, fn func(tx domainRepo.BudgetStore) error) error {
	return fn(m)
}

func (m *MockBudgetStore) CreateRequest(ctx context.Context, req *model.BudgetRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockBudgetStore) GetRequest(ctx context.Context, id int64) (*model.BudgetRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BudgetRequest), args.Error(1)
}

func (m *MockBudgetStore) GetRequestForUpdate(ctx context.Context, id int64) (*model.BudgetRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BudgetRequest), args.Error(1)
}

func (m *MockBudgetStore) SaveRequest(ctx context.Context, req *model.BudgetRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockBudgetStore) DeleteRequest(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBudgetStore) ListRequests(ctx context.Context, filters dto.RequestFilters) ([]model.BudgetRequest, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BudgetRequest), args.Error(1)
}

func (m *MockBudgetStore) CountRequests(ctx context.Context, filters dto.RequestFilters) (int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBudgetStore) CreateItem(ctx context.Context, item *model.BudgetItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockBudgetStore) GetItem(ctx context.Context, id int64) (*model.BudgetItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BudgetItem), args.Error(1)
}

func (m *MockBudgetStore) SaveItem(ctx context.Context, item *model.BudgetItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockBudgetStore) DeleteItem(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBudgetStore) ListItems(ctx context.Context, requestID int64) ([]model.BudgetItem, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BudgetItem), args.Error(1)
}

func (m *MockBudgetStore) SumItemCosts(ctx context.Context, requestID int64) (decimal.Decimal, int64, error) {
	args := m.Called(ctx, requestID)
	return args.Get(0).(decimal.Decimal), args.Get(1).(int64), args.Error(2)
}

func (m *MockBudgetStore) CreateFile(ctx context.Context, file *model.FileAttachment) error {
	args := m.Called(ctx, file)
	return args.Error(0)
}

func (m *MockBudgetStore) GetFile(ctx context.Context, id int64) (*model.FileAttachment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FileAttachment), args.Error(1)
}

func (m *MockBudgetStore) DeleteFile(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBudgetStore) ListFiles(ctx context.Context, requestID int64) ([]model.FileAttachment, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FileAttachment), args.Error(1)
}

// MockFileStore is a mock implementation of FileStore
type MockFileStore struct {
	mock.Mock
}

func (m *MockFileStore) Exists(path string) (bool, error) {
	args := m.Called(path)
	return args.Bool(0), args.Error(1)
}

func (m *MockFileStore) Remove(path string) error {
	args := m.Called(path)
	return args.Error(0)
}

func (m *MockFileStore) Save(path string, r io.Reader) (int64, error) {
	args := m.Called(path, r)
	return args.Get(0).(int64), args.Error(1)
}
