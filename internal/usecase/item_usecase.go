package usecase

import (
	"context"
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

const (
	operationCreate = "create"
	operationUpdate = "update"
	operationDelete = "delete"
	operationUpload = "upload"
)

// ItemUsecase handles budget line items. Every mutation locks the parent
// request, checks its status and recalculates its total in one transaction.
type ItemUsecase struct {
	store      domainRepo.BudgetStore
	validator  *validation.Validator
	policy     policy.StatusPolicy
	aggregator *TotalAggregator
	metrics    *metrics.Recorder
	logger     *zap.Logger
	now        func() time.Time
}

// NewItemUsecase creates a new item usecase instance
func NewItemUsecase(
	store domainRepo.BudgetStore,
	validator *validation.Validator,
	statusPolicy policy.StatusPolicy,
	aggregator *TotalAggregator,
	recorder *metrics.Recorder,
	logger *zap.Logger,
) *ItemUsecase {
	return &ItemUsecase{
		store:      store,
		validator:  validator,
		policy:     statusPolicy,
		aggregator: aggregator,
		metrics:    recorder,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// lockEditableParent locks the parent row and checks the status policy.
func (u *ItemUsecase) lockEditableParent(ctx context.Context, tx domainRepo.BudgetStore, requestID int64, action string) (*model.BudgetRequest, error) {
	req, err := tx.GetRequestForUpdate(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domainErrors.NewNotFoundError(domainErrors.EntityBudgetRequest, requestID)
	}
	if !u.policy.CanMutateChildren(req.Status) {
		return nil, domainErrors.NewNotPermittedError(string(req.Status), action)
	}
	return req, nil
}

// Create adds an item to an editable request.
func (u *ItemUsecase) Create(ctx context.Context, requestID int64, in dto.CreateBudgetItemInput) (*model.BudgetItem, error) {
	item, err := u.validator.CreateItem(in)
	if err != nil {
		u.metrics.ItemMutation(operationCreate, metrics.ResultRejected)
		return nil, err
	}

	err = u.store.WithinTransaction(ctx, func(tx domainRepo.BudgetStore) error {
		req, err := u.lockEditableParent(ctx, tx, requestID, "add items")
		if err != nil {
			return err
		}

		now := u.now()
		item.BudgetRequestID = requestID
		item.CreatedAt = now
		item.UpdatedAt = now
		if err := tx.CreateItem(ctx, item); err != nil {
			return err
		}
		return u.aggregator.Recalculate(ctx, tx, req)
	})
	if err != nil {
		return nil, u.fail(operationCreate, err, requestID, "failed to create budget item")
	}

	u.metrics.ItemMutation(operationCreate, metrics.ResultSuccess)
	u.logger.Info("Budget item created",
		zap.Int64("request_id", requestID),
		zap.Int64("item_id", item.ID),
		zap.String("total_cost", item.TotalCost.String()))
	return item, nil
}

// Get returns an item or NotFoundError.
func (u *ItemUsecase) Get(ctx context.Context, id int64) (*model.BudgetItem, error) {
	item, err := u.store.GetItem(ctx, id)
	if err != nil {
		return nil, storageError(err, "failed to get budget item")
	}
	if item == nil {
		return nil, domainErrors.NewNotFoundError(domainErrors.EntityBudgetItem, id)
	}
	return item, nil
}

// ListByRequest returns the items of a request in creation order.
func (u *ItemUsecase) ListByRequest(ctx context.Context, requestID int64) ([]model.BudgetItem, error) {
	req, err := u.store.GetRequest(ctx, requestID)
	if err != nil {
		return nil, storageError(err, "failed to get budget request")
	}
	if req == nil {
		return nil, domainErrors.NewNotFoundError(domainErrors.EntityBudgetRequest, requestID)
	}

	items, err := u.store.ListItems(ctx, requestID)
	if err != nil {
		return nil, storageError(err, "failed to list budget items")
	}
	return items, nil
}

// Update applies a partial item update and recalculates the parent total.
func (u *ItemUsecase) Update(ctx context.Context, id int64, in dto.UpdateBudgetItemInput) (*model.BudgetItem, error) {
	patch, err := u.validator.UpdateItem(in)
	if err != nil {
		u.metrics.ItemMutation(operationUpdate, metrics.ResultRejected)
		return nil, err
	}

	var item *model.BudgetItem
	var requestID int64
	err = u.store.WithinTransaction(ctx, func(tx domainRepo.BudgetStore) error {
		current, err := tx.GetItem(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domainErrors.NewNotFoundError(domainErrors.EntityBudgetItem, id)
		}
		requestID = current.BudgetRequestID

		req, err := u.lockEditableParent(ctx, tx, requestID, "update items")
		if err != nil {
			return err
		}

		// re-read under the parent lock
		if item, err = tx.GetItem(ctx, id); err != nil {
			return err
		}
		if item == nil {
			return domainErrors.NewNotFoundError(domainErrors.EntityBudgetItem, id)
		}

		patch.ApplyTo(item)
		if err := validation.CheckAmount("total_cost", item.TotalCost); err != nil {
			return err
		}
		item.UpdatedAt = u.now()
		if err := tx.SaveItem(ctx, item); err != nil {
			return err
		}
		return u.aggregator.Recalculate(ctx, tx, req)
	})
	if err != nil {
		return nil, u.fail(operationUpdate, err, requestID, "failed to update budget item")
	}

	u.metrics.ItemMutation(operationUpdate, metrics.ResultSuccess)
	u.logger.Info("Budget item updated",
		zap.Int64("request_id", requestID),
		zap.Int64("item_id", id),
		zap.String("total_cost", item.TotalCost.String()))
	return item, nil
}

// Delete removes an item and recalculates the parent total. It returns false
// without an error when the item or its parent is missing or the parent is
// not editable.
func (u *ItemUsecase) Delete(ctx context.Context, id int64) (bool, error) {
	deleted := false
	var requestID int64
	err := u.store.WithinTransaction(ctx, func(tx domainRepo.BudgetStore) error {
		item, err := tx.GetItem(ctx, id)
		if err != nil || item == nil {
			return err
		}
		requestID = item.BudgetRequestID

		req, err := tx.GetRequestForUpdate(ctx, requestID)
		if err != nil || req == nil {
			return err
		}
		if !u.policy.CanMutateChildren(req.Status) {
			u.logger.Info("Budget item delete refused",
				zap.Int64("item_id", id),
				zap.String("status", string(req.Status)))
			return nil
		}

		if err := tx.DeleteItem(ctx, id); err != nil {
			return err
		}
		if err := u.aggregator.Recalculate(ctx, tx, req); err != nil {
			return err
		}
		deleted = true
		return nil
	})
	if err != nil {
		return false, u.fail(operationDelete, err, requestID, "failed to delete budget item")
	}

	if !deleted {
		u.metrics.ItemMutation(operationDelete, metrics.ResultRejected)
		return false, nil
	}
	u.metrics.ItemMutation(operationDelete, metrics.ResultSuccess)
	u.logger.Info("Budget item deleted",
		zap.Int64("request_id", requestID),
		zap.Int64("item_id", id))
	return true, nil
}

func (u *ItemUsecase) fail(operation string, err error, requestID int64, message string) error {
	if isRejection(err) {
		u.metrics.ItemMutation(operation, metrics.ResultRejected)
		return err
	}
	u.metrics.ItemMutation(operation, metrics.ResultError)
	u.logger.Error("Budget item mutation failed",
		zap.String("operation", operation),
		zap.Int64("request_id", requestID),
		zap.Error(err))
	return storageError(err, message)
}
