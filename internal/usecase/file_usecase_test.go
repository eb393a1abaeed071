package usecase

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/gov-budget-request-form/internal/domain/dto"
	domainErrors "github.com/wekeepgrowing/gov-budget-request-form/internal/domain/errors"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/domain/model"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/domain/policy"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/validation"
)

func fileInput(size int64, mimeType string) dto.CreateFileAttachmentInput {
	return dto.CreateFileAttachmentInput{
		Filename:         "3f1c.pdf",
		OriginalFilename: "budget.pdf",
		FilePath:         "requests/3f1c.pdf",
		FileSize:         size,
		MimeType:         mimeType,
	}
}

func TestFileUsecase_Upload(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, policy.Default())
	req := f.createRequest(t)

	t.Run("too large", func(t *testing.T) {
		_, err := f.uploads.Upload(ctx, req.ID, fileInput(60*1024*1024, "application/pdf"))

		var tooLarge *domainErrors.FileTooLargeError
		require.ErrorAs(t, err, &tooLarge)
		assert.Equal(t, "file size 62914560 bytes exceeds limit of 52428800 bytes", err.Error())
	})

	t.Run("exactly at limit", func(t *testing.T) {
		_, err := f.uploads.Upload(ctx, req.ID, fileInput(model.MaxFileSize, "application/pdf"))
		require.NoError(t, err)
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, err := f.uploads.Upload(ctx, req.ID, fileInput(1024, "application/x-executable"))

		var unsupported *domainErrors.UnsupportedFileTypeError
		require.ErrorAs(t, err, &unsupported)
		assert.Contains(t, err.Error(), "application/x-executable")
	})

	t.Run("one byte allowed type", func(t *testing.T) {
		file, err := f.uploads.Upload(ctx, req.ID, fileInput(1, "text/plain"))
		require.NoError(t, err)
		assert.NotZero(t, file.ID)
		assert.Equal(t, req.ID, file.BudgetRequestID)
		assert.False(t, file.UploadedAt.IsZero())
	})

	t.Run("missing parent", func(t *testing.T) {
		_, err := f.uploads.Upload(ctx, 999, fileInput(60*1024*1024, "application/x-executable"))

		var notFound *domainErrors.NotFoundError
		require.ErrorAs(t, err, &notFound)
	})

	t.Run("status checked before size and type", func(t *testing.T) {
		locked := f.createRequest(t)
		f.setStatus(t, locked.ID, model.StatusSubmitted)

		_, err := f.uploads.Upload(ctx, locked.ID, fileInput(60*1024*1024, "application/x-executable"))

		var notPermitted *domainErrors.NotPermittedError
		require.ErrorAs(t, err, &notPermitted)
		assert.Equal(t, "submitted", notPermitted.Status)
	})

	files, err := f.uploads.ListByRequest(ctx, req.ID)
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestFileUsecase_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes bytes and record", func(t *testing.T) {
		f := newFixture(t, policy.Default())
		req := f.createRequest(t)
		_, err := f.files.Save("requests/3f1c.pdf", bytes.NewReader([]byte("data")))
		require.NoError(t, err)
		file, err := f.uploads.Upload(ctx, req.ID, fileInput(4, "application/pdf"))
		require.NoError(t, err)

		ok, err := f.uploads.Delete(ctx, file.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		exists, err := f.files.Exists("requests/3f1c.pdf")
		require.NoError(t, err)
		assert.False(t, exists)

		_, err = f.uploads.Get(ctx, file.ID)
		var notFound *domainErrors.NotFoundError
		require.ErrorAs(t, err, &notFound)
	})

	t.Run("missing bytes still deletes record", func(t *testing.T) {
		f := newFixture(t, policy.Default())
		req := f.createRequest(t)
		file, err := f.uploads.Upload(ctx, req.ID, fileInput(4, "application/pdf"))
		require.NoError(t, err)

		ok, err := f.uploads.Delete(ctx, file.ID)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("missing record", func(t *testing.T) {
		f := newFixture(t, policy.Default())
		ok, err := f.uploads.Delete(ctx, 42)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	for _, status := range lockedStatuses {
		t.Run("locked "+string(status), func(t *testing.T) {
			f := newFixture(t, policy.Default())
			req := f.createRequest(t)
			file, err := f.uploads.Upload(ctx, req.ID, fileInput(4, "application/pdf"))
			require.NoError(t, err)
			f.setStatus(t, req.ID, status)

			ok, err := f.uploads.Delete(ctx, file.ID)
			require.NoError(t, err)
			assert.False(t, ok)

			_, err = f.uploads.Get(ctx, file.ID)
			require.NoError(t, err)
		})
	}

	t.Run("physical removal failure is swallowed", func(t *testing.T) {
		f := newFixture(t, policy.Default())
		req := f.createRequest(t)
		file, err := f.uploads.Upload(ctx, req.ID, fileInput(4, "application/pdf"))
		require.NoError(t, err)

		files := new(MockFileStore)
		files.On("Exists", "requests/3f1c.pdf").Return(true, nil)
		files.On("Remove", "requests/3f1c.pdf").Return(errors.New("permission denied"))
		uploads := NewFileUsecase(f.store, files, validation.New(), policy.Default(), nil, zap.NewNop())

		ok, err := uploads.Delete(ctx, file.ID)
		require.NoError(t, err)
		assert.True(t, ok)
		files.AssertExpectations(t)

		_, err = f.uploads.Get(ctx, file.ID)
		var notFound *domainErrors.NotFoundError
		require.ErrorAs(t, err, &notFound)
	})

	t.Run("existence check failure is swallowed", func(t *testing.T) {
		f := newFixture(t, policy.Default())
		req := f.createRequest(t)
		file, err := f.uploads.Upload(ctx, req.ID, fileInput(4, "application/pdf"))
		require.NoError(t, err)

		files := new(MockFileStore)
		files.On("Exists", mock.Anything).Return(false, errors.New("stat failed"))
		uploads := NewFileUsecase(f.store, files, validation.New(), policy.Default(), nil, zap.NewNop())

		ok, err := uploads.Delete(ctx, file.ID)
		require.NoError(t, err)
		assert.True(t, ok)
		files.AssertNotCalled(t, "Remove", mock.Anything)
	})
}

func TestFileUsecase_CheckUpload(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, policy.Default())
	req := f.createRequest(t)
	locked := f.createRequest(t)
	f.setStatus(t, locked.ID, model.StatusApproved)

	tests := []struct {
		name      string
		requestID int64
		size      int64
		mimeType  string
		target    interface{}
	}{
		{name: "missing parent", requestID: 999, size: 1, mimeType: "application/pdf", target: new(*domainErrors.NotFoundError)},
		{name: "locked parent", requestID: locked.ID, size: 60 * 1024 * 1024, mimeType: "application/x-executable", target: new(*domainErrors.NotPermittedError)},
		{name: "too large", requestID: req.ID, size: 60 * 1024 * 1024, mimeType: "application/pdf", target: new(*domainErrors.FileTooLargeError)},
		{name: "unsupported type", requestID: req.ID, size: 1, mimeType: "application/x-executable", target: new(*domainErrors.UnsupportedFileTypeError)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.uploads.CheckUpload(ctx, tt.requestID, tt.size, tt.mimeType)
			require.ErrorAs(t, err, tt.target)
		})
	}

	t.Run("accepted upload records nothing", func(t *testing.T) {
		require.NoError(t, f.uploads.CheckUpload(ctx, req.ID, 1, " Application/PDF "))

		files, err := f.uploads.ListByRequest(ctx, req.ID)
		require.NoError(t, err)
		assert.Empty(t, files)
	})
}
