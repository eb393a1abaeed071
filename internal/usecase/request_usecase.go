package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/wekeepgrowing/gov-budget-request-form/internal/domain/dto"
	domainErrors "github.com/wekeepgrowing/gov-budget-request-form/internal/domain/errors"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/domain/model"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/domain/policy"
	domainRepo "github.com/wekeepgrowing/gov-budget-request-form/internal/domain/repository"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/infrastructure/metrics"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/validation"
)

// RequestUsecase handles the budget request lifecycle
type RequestUsecase struct {
	store      domainRepo.BudgetStore
	files      domainRepo.FileStore
	validator  *validation.Validator
	policy     policy.StatusPolicy
	aggregator *TotalAggregator
	metrics    *metrics.Recorder
	logger     *zap.Logger
	now        func() time.Time
}

// NewRequestUsecase creates a new request usecase instance
func NewRequestUsecase(
	store domainRepo.BudgetStore,
	files domainRepo.FileStore,
	validator *validation.Validator,
	statusPolicy policy.StatusPolicy,
	aggregator *TotalAggregator,
	recorder *metrics.Recorder,
	logger *zap.Logger,
) *RequestUsecase {
	return &RequestUsecase{
		store:      store,
		files:      files,
		validator:  validator,
		policy:     statusPolicy,
		aggregator: aggregator,
		metrics:    recorder,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Create validates the payload and stores a new draft request.
func (u *RequestUsecase) Create(ctx context.Context, in dto.CreateBudgetRequestInput) (*model.BudgetRequest, error) {
	req, err := u.validator.CreateRequest(in)
	if err != nil {
		return nil, err
	}

	now := u.now()
	req.CreatedAt = now
	req.UpdatedAt = now

	if err := u.store.CreateRequest(ctx, req); err != nil {
		u.logger.Error("Failed to create budget request", zap.Error(err))
		return nil, storageError(err, "failed to create budget request")
	}

	u.logger.Info("Budget request created",
		zap.Int64("request_id", req.ID),
		zap.String("department", req.DepartmentName),
		zap.Int("fiscal_year", req.FiscalYear))
	return req, nil
}

// Get returns a request or NotFoundError.
func (u *RequestUsecase) Get(ctx context.Context, id int64) (*model.BudgetRequest, error) {
	req, err := u.store.GetRequest(ctx, id)
	if err != nil {
		return nil, storageError(err, "failed to get budget request")
	}
	if req == nil {
		return nil, domainErrors.NewNotFoundError(domainErrors.EntityBudgetRequest, id)
	}
	return req, nil
}

// GetDetail returns a request with its items and files.
func (u *RequestUsecase) GetDetail(ctx context.Context, id int64) (*dto.RequestDetail, error) {
	detail := &dto.RequestDetail{}
	err := u.store.WithinTransaction(ctx, func(tx domainRepo.BudgetStore) error {
		req, err := tx.GetRequest(ctx, id)
		if err != nil {
			return err
		}
		if req == nil {
			return domainErrors.NewNotFoundError(domainErrors.EntityBudgetRequest, id)
		}
		detail.Request = req

		if detail.Items, err = tx.ListItems(ctx, id); err != nil {
			return err
		}
		detail.Files, err = tx.ListFiles(ctx, id)
		return err
	})
	if err != nil {
		return nil, storageError(err, "failed to get budget request detail")
	}
	return detail, nil
}

// Update applies a partial update. Reviewer fields (status, reviewed_at,
// reviewer_notes) are always writable; other fields are gated by the status
// policy. A direct total_amount write only sticks while the request has no
// items.
func (u *RequestUsecase) Update(ctx context.Context, id int64, in dto.UpdateBudgetRequestInput) (*model.BudgetRequest, error) {
	patch, err := u.validator.UpdateRequest(in)
	if err != nil {
		return nil, err
	}

	var updated *model.BudgetRequest
	err = u.store.WithinTransaction(ctx, func(tx domainRepo.BudgetStore) error {
		req, err := tx.GetRequestForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if req == nil {
			return domainErrors.NewNotFoundError(domainErrors.EntityBudgetRequest, id)
		}
		if patch.TouchesMetadata() && !u.policy.CanUpdateMetadata(req.Status) {
			return domainErrors.NewNotPermittedError(string(req.Status), "update request details")
		}

		patch.ApplyTo(req)
		req.UpdatedAt = u.now()
		updated = req

		if patch.TotalAmount.IsSet() {
			_, count, err := tx.SumItemCosts(ctx, id)
			if err != nil {
				return err
			}
			if count > 0 {
				u.logger.Warn("Ignoring direct total_amount write on request with items",
					zap.Int64("request_id", id),
					zap.Int64("item_count", count))
				return u.aggregator.Recalculate(ctx, tx, req)
			}
		}
		return tx.SaveRequest(ctx, req)
	})
	if err != nil {
		return nil, storageError(err, "failed to update budget request")
	}

	u.logger.Info("Budget request updated",
		zap.Int64("request_id", id),
		zap.String("status", string(updated.Status)))
	return updated, nil
}

// Delete removes a request with its items and files. Attachment bytes are
// removed after the commit on a best-effort basis.
func (u *RequestUsecase) Delete(ctx context.Context, id int64) error {
	var files []model.FileAttachment
	err := u.store.WithinTransaction(ctx, func(tx domainRepo.BudgetStore) error {
		req, err := tx.GetRequestForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if req == nil {
			return domainErrors.NewNotFoundError(domainErrors.EntityBudgetRequest, id)
		}
		if files, err = tx.ListFiles(ctx, id); err != nil {
			return err
		}
		return tx.DeleteRequest(ctx, id)
	})
	if err != nil {
		return storageError(err, "failed to delete budget request")
	}

	for _, f := range files {
		removePhysicalFile(u.files, u.logger, &f)
	}

	u.logger.Info("Budget request deleted",
		zap.Int64("request_id", id),
		zap.Int("file_count", len(files)))
	return nil
}

// submitRequiredFields are checked in this order at submission.
var submitRequiredFields = []struct {
	name  string
	value func(*model.BudgetRequest) string
}{
	{"department_name", func(r *model.BudgetRequest) string { return r.DepartmentName }},
	{"contact_person", func(r *model.BudgetRequest) string { return r.ContactPerson }},
	{"contact_email", func(r *model.BudgetRequest) string { return r.ContactEmail }},
	{"request_title", func(r *model.BudgetRequest) string { return r.RequestTitle }},
	{"request_description", func(r *model.BudgetRequest) string { return r.RequestDescription }},
	{"total_amount", func(r *model.BudgetRequest) string { return r.TotalAmount.String() }},
	{"justification", func(r *model.BudgetRequest) string { return r.Justification }},
	{"expected_outcomes", func(r *model.BudgetRequest) string { return r.ExpectedOutcomes }},
}

func missingSubmitFields(req *model.BudgetRequest) []string {
	var missing []string
	for _, f := range submitRequiredFields {
		if strings.TrimSpace(f.value(req)) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// Submit moves a draft to submitted. Checks run in order and the first
// failure aborts with nothing written: existence, draft status, field
// completeness, positive total.
func (u *RequestUsecase) Submit(ctx context.Context, id int64) (*model.BudgetRequest, error) {
	var submitted *model.BudgetRequest
	err := u.store.WithinTransaction(ctx, func(tx domainRepo.BudgetStore) error {
		req, err := tx.GetRequestForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if req == nil {
			return domainErrors.NewNotFoundError(domainErrors.EntityBudgetRequest, id)
		}
		if req.Status != model.StatusDraft {
			return domainErrors.NewInvalidTransitionError(string(req.Status), string(model.StatusSubmitted))
		}
		if missing := missingSubmitFields(req); len(missing) > 0 {
			return domainErrors.NewMissingFieldsError(missing)
		}
		if !req.TotalAmount.IsPositive() {
			return domainErrors.NewInvalidAmountError(req.TotalAmount)
		}

		now := u.now()
		req.Status = model.StatusSubmitted
		req.SubmittedAt = &now
		req.UpdatedAt = now
		if err := tx.SaveRequest(ctx, req); err != nil {
			return err
		}
		submitted = req
		return nil
	})
	if err != nil {
		if isRejection(err) {
			u.metrics.Submission(metrics.ResultRejected)
			u.logger.Info("Budget request submission rejected",
				zap.Int64("request_id", id),
				zap.Error(err))
			return nil, err
		}
		u.metrics.Submission(metrics.ResultError)
		u.logger.Error("Failed to submit budget request",
			zap.Int64("request_id", id),
			zap.Error(err))
		return nil, storageError(err, "failed to submit budget request")
	}

	u.metrics.Submission(metrics.ResultSuccess)
	u.metrics.SubmittedAmount(submitted.TotalAmount)
	u.logger.Info("Budget request submitted",
		zap.Int64("request_id", id),
		zap.String("total_amount", submitted.TotalAmount.String()))
	return submitted, nil
}

// List returns one page of requests matching every supplied filter, newest
// first.
func (u *RequestUsecase) List(ctx context.Context, in dto.RequestFiltersInput) (*dto.RequestPage, error) {
	filters, err := u.validator.RequestFilters(in)
	if err != nil {
		return nil, err
	}
	filters.SetDefaults()

	var (
		requests []model.BudgetRequest
		total    int64
	)
	err = u.store.WithinTransaction(ctx, func(tx domainRepo.BudgetStore) error {
		var err error
		if total, err = tx.CountRequests(ctx, *filters); err != nil {
			return err
		}
		requests, err = tx.ListRequests(ctx, *filters)
		return err
	})
	if err != nil {
		return nil, storageError(err, "failed to list budget requests")
	}

	return dto.NewRequestPage(requests, total, filters.Limit, filters.Offset), nil
}

// RecalculateTotal reconciles total_amount with the item sum.
func (u *RequestUsecase) RecalculateTotal(ctx context.Context, id int64) (*model.BudgetRequest, error) {
	var req *model.BudgetRequest
	err := u.store.WithinTransaction(ctx, func(tx domainRepo.BudgetStore) error {
		var err error
		req, err = tx.GetRequestForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if req == nil {
			return domainErrors.NewNotFoundError(domainErrors.EntityBudgetRequest, id)
		}
		return u.aggregator.Recalculate(ctx, tx, req)
	})
	if err != nil {
		return nil, storageError(err, "failed to recalculate budget request total")
	}
	return req, nil
}
