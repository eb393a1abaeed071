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

// FileUsecase handles attachment metadata. Bytes are written by the caller
// before Upload and removed here on delete.
type FileUsecase struct {
	store     domainRepo.BudgetStore
	files     domainRepo.FileStore
	validator *validation.Validator
	policy    policy.StatusPolicy
	metrics   *metrics.Recorder
	logger    *zap.Logger
	now       func() time.Time
}

// NewFileUsecase creates a new file usecase instance
func NewFileUsecase(
	store domainRepo.BudgetStore,
	files domainRepo.FileStore,
	validator *validation.Validator,
	statusPolicy policy.StatusPolicy,
	recorder *metrics.Recorder,
	logger *zap.Logger,
) *FileUsecase {
	return &FileUsecase{
		store:     store,
		files:     files,
		validator: validator,
		policy:    statusPolicy,
		metrics:   recorder,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Upload records attachment metadata. Checks run in order: parent exists,
// parent editable, size within limit, MIME type allowed.
func (u *FileUsecase) Upload(ctx context.Context, requestID int64, in dto.CreateFileAttachmentInput) (*model.FileAttachment, error) {
	file, err := u.validator.CreateFile(in)
	if err != nil {
		u.metrics.FileOperation(operationUpload, metrics.ResultRejected)
		return nil, err
	}

	err = u.store.WithinTransaction(ctx, func(tx domainRepo.BudgetStore) error {
		req, err := tx.GetRequestForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		if err := u.checkUpload(requestID, req, file.FileSize, file.MimeType); err != nil {
			return err
		}

		file.BudgetRequestID = requestID
		file.UploadedAt = u.now()
		return tx.CreateFile(ctx, file)
	})
	if err != nil {
		if isRejection(err) {
			u.metrics.FileOperation(operationUpload, metrics.ResultRejected)
			return nil, err
		}
		u.metrics.FileOperation(operationUpload, metrics.ResultError)
		u.logger.Error("Failed to upload file",
			zap.Int64("request_id", requestID),
			zap.Error(err))
		return nil, storageError(err, "failed to create file attachment")
	}

	u.metrics.FileOperation(operationUpload, metrics.ResultSuccess)
	u.logger.Info("File attached",
		zap.Int64("request_id", requestID),
		zap.Int64("file_id", file.ID),
		zap.String("mime_type", file.MimeType),
		zap.Int64("file_size", file.FileSize))
	return file, nil
}

// CheckUpload runs the upload checks without recording anything, so a
// caller can refuse a file before storing its bytes. Upload repeats them
// under the parent lock.
func (u *FileUsecase) CheckUpload(ctx context.Context, requestID, fileSize int64, mimeType string) error {
	req, err := u.store.GetRequest(ctx, requestID)
	if err != nil {
		return storageError(err, "failed to get budget request")
	}
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if err := u.checkUpload(requestID, req, fileSize, mimeType); err != nil {
		u.metrics.FileOperation(operationUpload, metrics.ResultRejected)
		return err
	}
	return nil
}

// checkUpload applies the upload rules in order against the parent req,
// which is nil when the request does not exist.
func (u *FileUsecase) checkUpload(requestID int64, req *model.BudgetRequest, fileSize int64, mimeType string) error {
	if req == nil {
		return domainErrors.NewNotFoundError(domainErrors.EntityBudgetRequest, requestID)
	}
	if !u.policy.CanMutateChildren(req.Status) {
		return domainErrors.NewNotPermittedError(string(req.Status), "upload files")
	}
	if fileSize > model.MaxFileSize {
		return domainErrors.NewFileTooLargeError(fileSize, model.MaxFileSize)
	}
	if !model.IsAllowedMimeType(mimeType) {
		return domainErrors.NewUnsupportedFileTypeError(mimeType)
	}
	return nil
}

// Get returns attachment metadata or NotFoundError.
func (u *FileUsecase) Get(ctx context.Context, id int64) (*model.FileAttachment, error) {
	file, err := u.store.GetFile(ctx, id)
	if err != nil {
		return nil, storageError(err, "failed to get file attachment")
	}
	if file == nil {
		return nil, domainErrors.NewNotFoundError(domainErrors.EntityFileAttachment, id)
	}
	return file, nil
}

// ListByRequest returns the attachments of a request.
func (u *FileUsecase) ListByRequest(ctx context.Context, requestID int64) ([]model.FileAttachment, error) {
	req, err := u.store.GetRequest(ctx, requestID)
	if err != nil {
		return nil, storageError(err, "failed to get budget request")
	}
	if req == nil {
		return nil, domainErrors.NewNotFoundError(domainErrors.EntityBudgetRequest, requestID)
	}

	files, err := u.store.ListFiles(ctx, requestID)
	if err != nil {
		return nil, storageError(err, "failed to list file attachments")
	}
	return files, nil
}

// Delete removes an attachment. It returns false without an error when the
// file or its parent is missing or the parent is not editable. Failing to
// remove the bytes is logged and does not stop the metadata delete.
func (u *FileUsecase) Delete(ctx context.Context, id int64) (bool, error) {
	deleted := false
	err := u.store.WithinTransaction(ctx, func(tx domainRepo.BudgetStore) error {
		file, err := tx.GetFile(ctx, id)
		if err != nil || file == nil {
			return err
		}

		req, err := tx.GetRequestForUpdate(ctx, file.BudgetRequestID)
		if err != nil || req == nil {
			return err
		}
		if !u.policy.CanMutateChildren(req.Status) {
			u.logger.Info("File delete refused",
				zap.Int64("file_id", id),
				zap.String("status", string(req.Status)))
			return nil
		}

		removePhysicalFile(u.files, u.logger, file)

		if err := tx.DeleteFile(ctx, id); err != nil {
			return err
		}
		deleted = true
		return nil
	})
	if err != nil {
		u.metrics.FileOperation(operationDelete, metrics.ResultError)
		u.logger.Error("Failed to delete file",
			zap.Int64("file_id", id),
			zap.Error(err))
		return false, storageError(err, "failed to delete file attachment")
	}

	if !deleted {
		u.metrics.FileOperation(operationDelete, metrics.ResultRejected)
		return false, nil
	}
	u.metrics.FileOperation(operationDelete, metrics.ResultSuccess)
	u.logger.Info("File deleted", zap.Int64("file_id", id))
	return true, nil
}

// removePhysicalFile deletes the bytes of file if present. Errors are logged
// at warn and swallowed.
func removePhysicalFile(files domainRepo.FileStore, logger *zap.Logger, file *model.FileAttachment) {
	if files == nil {
		return
	}
	exists, err := files.Exists(file.FilePath)
	if err != nil {
		logger.Warn("Failed to check attachment bytes",
			zap.Int64("file_id", file.ID),
			zap.String("path", file.FilePath),
			zap.Error(err))
		return
	}
	if !exists {
		return
	}
	if err := files.Remove(file.FilePath); err != nil {
		logger.Warn("Failed to remove attachment bytes",
			zap.Int64("file_id", file.ID),
			zap.String("path", file.FilePath),
			zap.Error(err))
	}
}
