package usecase

import (
	"go.uber.org/zap"

	"github.com/wekeepgrowing/gov-budget-request-form/internal/domain/policy"
	domainRepo "github.com/wekeepgrowing/gov-budget-request-form/internal/domain/repository"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/infrastructure/metrics"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/validation"
)

// Usecases holds every usecase wired against one store.
type Usecases struct {
	Requests *RequestUsecase
	Items    *ItemUsecase
	Files    *FileUsecase
	Exports  *ExportUsecase
}

// NewUsecases wires the usecases. recorder may be nil.
func NewUsecases(
	store domainRepo.BudgetStore,
	files domainRepo.FileStore,
	statusPolicy policy.StatusPolicy,
	writer ReportWriter,
	recorder *metrics.Recorder,
	logger *zap.Logger,
) *Usecases {
	v := validation.New()
	aggregator := NewTotalAggregator(logger, recorder)
	requests := NewRequestUsecase(store, files, v, statusPolicy, aggregator, recorder, logger)

	return &Usecases{
		Requests: requests,
		Items:    NewItemUsecase(store, v, statusPolicy, aggregator, recorder, logger),
		Files:    NewFileUsecase(store, files, v, statusPolicy, recorder, logger),
		Exports:  NewExportUsecase(requests, writer, logger),
	}
}
