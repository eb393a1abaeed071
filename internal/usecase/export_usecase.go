package usecase

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/wekeepgrowing/gov-budget-request-form/internal/domain/dto"
	apperrors "github.com/wekeepgrowing/gov-budget-request-form/pkg/errors"
)

// ReportWriter renders a request detail in some document format.
type ReportWriter interface {
	Write(w io.Writer, detail *dto.RequestDetail) error
}

// ExportUsecase renders budget requests as documents.
type ExportUsecase struct {
	requests *RequestUsecase
	writer   ReportWriter
	logger   *zap.Logger
}

// NewExportUsecase creates a new export usecase instance
func NewExportUsecase(requests *RequestUsecase, writer ReportWriter, logger *zap.Logger) *ExportUsecase {
	return &ExportUsecase{
		requests: requests,
		writer:   writer,
		logger:   logger,
	}
}

// Export writes the request with its items to w.
func (u *ExportUsecase) Export(ctx context.Context, id int64, w io.Writer) error {
	detail, err := u.requests.GetDetail(ctx, id)
	if err != nil {
		return err
	}

	if err := u.writer.Write(w, detail); err != nil {
		u.logger.Error("Failed to render budget request",
			zap.Int64("request_id", id),
			zap.Error(err))
		return apperrors.Wrap(err, "failed to export budget request")
	}

	u.logger.Info("Budget request exported",
		zap.Int64("request_id", id),
		zap.Int("item_count", len(detail.Items)))
	return nil
}
