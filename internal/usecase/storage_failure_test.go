package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/gov-budget-request-form/internal/domain/dto"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/domain/model"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/domain/policy"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/infrastructure/metrics"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/validation"
	apperrors "github.com/wekeepgrowing/gov-budget-request-form/pkg/errors"
)

var errConnectionReset = errors.New("connection reset by peer")

func completeDraft() *model.BudgetRequest {
	return &model.BudgetRequest{
		ID:                 1,
		DepartmentName:     "Fire",
		ContactPerson:      "Alex Kim",
		ContactEmail:       "alex.kim@city.gov",
		FiscalYear:         2026,
		RequestTitle:       "Hoses",
		RequestDescription: "Replace worn hoses",
		Justification:      "Hoses failed pressure testing",
		ExpectedOutcomes:   "Reliable equipment",
		TotalAmount:        amount("900"),
		Status:             model.StatusDraft,
	}
}

func newMockedUsecases(store *MockBudgetStore) (*RequestUsecase, *ItemUsecase, *FileUsecase) {
	logger := zap.NewNop()
	recorder := metrics.NewRecorder(prometheus.NewRegistry())
	v := validation.New()
	aggregator := NewTotalAggregator(logger, recorder)
	return NewRequestUsecase(store, nil, v, policy.Default(), aggregator, recorder, logger),
		NewItemUsecase(store, v, policy.Default(), aggregator, recorder, logger),
		NewFileUsecase(store, nil, v, policy.Default(), recorder, logger)
}

func TestStorageFailuresPropagate(t *testing.T) {
	ctx := context.Background()

	t.Run("submit save", func(t *testing.T) {
		store := new(MockBudgetStore)
		store.On("GetRequestForUpdate", ctx, int64(1)).Return(completeDraft(), nil)
		store.On("SaveRequest", ctx, mock.AnythingOfType("*model.BudgetRequest")).Return(errConnectionReset)
		requests, _, _ := newMockedUsecases(store)

		_, err := requests.Submit(ctx, 1)

		require.Error(t, err)
		assert.ErrorIs(t, err, errConnectionReset)
		assert.Equal(t, apperrors.ErrInternal, apperrors.CodeOf(err))
		store.AssertExpectations(t)
	})

	t.Run("get", func(t *testing.T) {
		store := new(MockBudgetStore)
		store.On("GetRequest", ctx, int64(1)).Return(nil, errConnectionReset)
		requests, _, _ := newMockedUsecases(store)

		_, err := requests.Get(ctx, 1)

		assert.ErrorIs(t, err, errConnectionReset)
		assert.Equal(t, apperrors.ErrInternal, apperrors.CodeOf(err))
	})

	t.Run("list count", func(t *testing.T) {
		store := new(MockBudgetStore)
		store.On("CountRequests", ctx, mock.Anything).Return(int64(0), errConnectionReset)
		requests, _, _ := newMockedUsecases(store)

		_, err := requests.List(ctx, dto.RequestFiltersInput{})

		assert.ErrorIs(t, err, errConnectionReset)
		store.AssertNotCalled(t, "ListRequests", mock.Anything, mock.Anything)
	})

	t.Run("item create sum", func(t *testing.T) {
		store := new(MockBudgetStore)
		store.On("GetRequestForUpdate", ctx, int64(1)).Return(completeDraft(), nil)
		store.On("CreateItem", ctx, mock.AnythingOfType("*model.BudgetItem")).Return(nil)
		store.On("SumItemCosts", ctx, int64(1)).Return(amount("0"), int64(0), errConnectionReset)
		_, items, _ := newMockedUsecases(store)

		cost := amount("10")
		_, err := items.Create(ctx, 1, dto.CreateBudgetItemInput{
			Category: "other", ItemDescription: "Spare", UnitCost: &cost,
		})

		assert.ErrorIs(t, err, errConnectionReset)
		assert.Equal(t, apperrors.ErrInternal, apperrors.CodeOf(err))
		store.AssertNotCalled(t, "SaveRequest", mock.Anything, mock.Anything)
	})

	t.Run("item delete", func(t *testing.T) {
		store := new(MockBudgetStore)
		store.On("GetItem", ctx, int64(5)).Return(&model.BudgetItem{ID: 5, BudgetRequestID: 1}, nil)
		store.On("GetRequestForUpdate", ctx, int64(1)).Return(completeDraft(), nil)
		store.On("DeleteItem", ctx, int64(5)).Return(errConnectionReset)
		_, items, _ := newMockedUsecases(store)

		ok, err := items.Delete(ctx, 5)

		assert.False(t, ok)
		assert.ErrorIs(t, err, errConnectionReset)
	})

	t.Run("file delete", func(t *testing.T) {
		store := new(MockBudgetStore)
		store.On("GetFile", ctx, int64(3)).Return(nil, errConnectionReset)
		_, _, files := newMockedUsecases(store)

		ok, err := files.Delete(ctx, 3)

		assert.False(t, ok)
		assert.ErrorIs(t, err, errConnectionReset)
	})
}
