package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/wekeepgrowing/gov-budget-request-form/internal/domain/model"
	domainRepo "github.com/wekeepgrowing/gov-budget-request-form/internal/domain/repository"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/infrastructure/metrics"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/validation"
)

// TotalAggregator keeps a request's total_amount equal to the sum of its
// items' total_cost.
type TotalAggregator struct {
	logger  *zap.Logger
	metrics *metrics.Recorder
	now     func() time.Time
}

// NewTotalAggregator creates a new total aggregator
func NewTotalAggregator(logger *zap.Logger, recorder *metrics.Recorder) *TotalAggregator {
	return &TotalAggregator{
		logger:  logger,
		metrics: recorder,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Recalculate sums the items of req through tx, stores the result with a
// fresh updated_at and saves req. It must run in the same transaction as the
// item mutation, after the parent row is locked.
func (a *TotalAggregator) Recalculate(ctx context.Context, tx domainRepo.BudgetStore, req *model.BudgetRequest) error {
	total, count, err := tx.SumItemCosts(ctx, req.ID)
	if err != nil {
		return fmt.Errorf("failed to sum items: %w", err)
	}
	if err := validation.CheckAmount("total_amount", total); err != nil {
		return err
	}

	previous := req.TotalAmount
	req.TotalAmount = total
	req.UpdatedAt = a.now()

	if err := tx.SaveRequest(ctx, req); err != nil {
		return fmt.Errorf("failed to save recalculated total: %w", err)
	}

	a.metrics.Recalculation()
	a.logger.Debug("Recalculated request total",
		zap.Int64("request_id", req.ID),
		zap.Int64("item_count", count),
		zap.String("previous_total", previous.String()),
		zap.String("total_amount", total.String()))
	return nil
}
