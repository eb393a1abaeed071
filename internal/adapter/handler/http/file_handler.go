package http

import (
	"fmt"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/gov-budget-request-form/internal/domain/dto"
	domainErrors "github.com/wekeepgrowing/gov-budget-request-form/internal/domain/errors"
	domainRepo "github.com/wekeepgrowing/gov-budget-request-form/internal/domain/repository"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/usecase"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/validation"
)

// uploadField is the multipart form field carrying the file.
const uploadField = "file"

// FileHandler handles attachment endpoints
type FileHandler struct {
	files  *usecase.FileUsecase
	store  domainRepo.FileStore
	logger *zap.Logger
}

// NewFileHandler creates a new file handler instance
func NewFileHandler(files *usecase.FileUsecase, store domainRepo.FileStore, logger *zap.Logger) *FileHandler {
	return &FileHandler{
		files:  files,
		store:  store,
		logger: logger,
	}
}

// ListByRequest handles GET /api/v1/requests/:id/files
func (h *FileHandler) ListByRequest(c echo.Context) error {
	requestID, err := pathID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	files, err := h.files.ListByRequest(c.Request().Context(), requestID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, dto.NewFileAttachmentResponses(files))
}

// Upload handles POST /api/v1/requests/:id/files. Uploads the checks would
// refuse are rejected before any bytes are stored. Accepted bytes are stored
// under a generated name and removed again if recording the metadata fails.
func (h *FileHandler) Upload(c echo.Context) error {
	requestID, err := pathID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	header, err := c.FormFile(uploadField)
	if err != nil {
		return respondError(c, h.logger, domainErrors.NewValidationError(domainErrors.Violation{
			Field:   uploadField,
			Rule:    validation.RuleRequired,
			Message: "multipart field \"file\" is required",
		}))
	}

	ext := strings.ToLower(path.Ext(header.Filename))
	mimeType := header.Header.Get(echo.HeaderContentType)
	if mimeType == "" || mimeType == echo.MIMEOctetStream {
		if byExt := mime.TypeByExtension(ext); byExt != "" {
			mimeType = byExt
		}
	}
	if mediaType, _, err := mime.ParseMediaType(mimeType); err == nil {
		mimeType = mediaType
	}

	if err := h.files.CheckUpload(c.Request().Context(), requestID, header.Size, mimeType); err != nil {
		return respondError(c, h.logger, err)
	}

	src, err := header.Open()
	if err != nil {
		return respondError(c, h.logger, fmt.Errorf("failed to open upload: %w", err))
	}
	defer src.Close()

	filename := uuid.NewString() + ext
	storedPath := path.Join("requests", fmt.Sprint(requestID), filename)

	size, err := h.store.Save(storedPath, src)
	if err != nil {
		return respondError(c, h.logger, fmt.Errorf("failed to store upload: %w", err))
	}

	file, err := h.files.Upload(c.Request().Context(), requestID, dto.CreateFileAttachmentInput{
		Filename:         filename,
		OriginalFilename: path.Base(header.Filename),
		FilePath:         storedPath,
		FileSize:         size,
		MimeType:         mimeType,
	})
	if err != nil {
		if removeErr := h.store.Remove(storedPath); removeErr != nil {
			h.logger.Warn("Failed to remove rejected upload",
				zap.String("path", storedPath),
				zap.Error(removeErr))
		}
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, dto.NewFileAttachmentResponse(file))
}

// Get handles GET /api/v1/files/:id
func (h *FileHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	file, err := h.files.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, dto.NewFileAttachmentResponse(file))
}

// Delete handles DELETE /api/v1/files/:id
func (h *FileHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	ok, err := h.files.Delete(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, dto.DeleteResponse{Success: ok})
}
