package usecase

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/gov-budget-request-form/internal/adapter/repository/memory"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/adapter/storage"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/domain/dto"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/domain/model"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/domain/policy"
	domainRepo "github.com/wekeepgrowing/gov-budget-request-form/internal/domain/repository"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/infrastructure/metrics"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/validation"
)

type fixture struct {
	store    *memory.Store
	fs       afero.Fs
	files    domainRepo.FileStore
	registry *prometheus.Registry
	requests *RequestUsecase
	items    *ItemUsecase
	uploads  *FileUsecase
}

func newFixture(t *testing.T, statusPolicy policy.StatusPolicy) *fixture {
	t.Helper()

	store := memory.NewStore()
	fs := afero.NewMemMapFs()
	files := storage.NewFileStore(fs)
	registry := prometheus.NewRegistry()
	recorder := metrics.NewRecorder(registry)
	logger := zap.NewNop()
	v := validation.New()
	aggregator := NewTotalAggregator(logger, recorder)

	return &fixture{
		store:    store,
		fs:       fs,
		files:    files,
		registry: registry,
		requests: NewRequestUsecase(store, files, v, statusPolicy, aggregator, recorder, logger),
		items:    NewItemUsecase(store, v, statusPolicy, aggregator, recorder, logger),
		uploads:  NewFileUsecase(store, files, v, statusPolicy, recorder, logger),
	}
}

func validRequestInput() dto.CreateBudgetRequestInput {
	return dto.CreateBudgetRequestInput{
		DepartmentName:     "Parks and Recreation",
		ContactPerson:      "Jordan Lee",
		ContactEmail:       "jordan.lee@city.gov",
		FiscalYear:         2026,
		RequestTitle:       "Playground refresh",
		RequestDescription: "Replace aging playground equipment",
		Justification:      "Current equipment fails the annual safety inspection",
		ExpectedOutcomes:   "Safer playgrounds for residents",
	}
}

func (f *fixture) createRequest(t *testing.T) *model.BudgetRequest {
	t.Helper()
	req, err := f.requests.Create(context.Background(), validRequestInput())
	require.NoError(t, err)
	return req
}

func (f *fixture) addItem(t *testing.T, requestID int64, cost string) *model.BudgetItem {
	t.Helper()
	unitCost := amount(cost)
	item, err := f.items.Create(context.Background(), requestID, dto.CreateBudgetItemInput{
		Category:        string(model.CategoryEquipment),
		ItemDescription: "Line item " + cost,
		UnitCost:        &unitCost,
	})
	require.NoError(t, err)
	return item
}

// setStatus writes the status directly, the way a reviewer would.
func (f *fixture) setStatus(t *testing.T, id int64, status model.RequestStatus) {
	t.Helper()
	_, err := f.requests.Update(context.Background(), id, dto.UpdateBudgetRequestInput{
		Status: dto.Some(string(status)),
	})
	require.NoError(t, err)
}

func (f *fixture) reload(t *testing.T, id int64) *model.BudgetRequest {
	t.Helper()
	req, err := f.requests.Get(context.Background(), id)
	require.NoError(t, err)
	return req
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertAmount(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, amount(expected).Equal(actual), "expected %s, got %s", expected, actual.String())
}

var (
	editableStatuses = []model.RequestStatus{model.StatusDraft, model.StatusRevisionRequested}
	lockedStatuses   = []model.RequestStatus{model.StatusSubmitted, model.StatusUnderReview, model.StatusApproved, model.StatusRejected}
)
