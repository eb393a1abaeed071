package errors

import (
	"fmt"

	apperrors "github.com/wekeepgrowing/gov-budget-request-form/pkg/errors"
)

// FileTooLargeError is returned when an attachment exceeds the size limit
type FileTooLargeError struct {
	Size  int64
	Limit int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("file size %d bytes exceeds limit of %d bytes", e.Size, e.Limit)
}

func (e *FileTooLargeError) Code() string {
	return apperrors.ErrInvalidArgument
}

// NewFileTooLargeError creates a new FileTooLargeError
func NewFileTooLargeError(size, limit int64) *FileTooLargeError {
	return &FileTooLargeError{Size: size, Limit: limit}
}

// UnsupportedFileTypeError is returned when an attachment's MIME type is not
// in the allow-list
type UnsupportedFileTypeError struct {
	MimeType string
}

func (e *UnsupportedFileTypeError) Error() string {
	return fmt.Sprintf("file type %q is not allowed", e.MimeType)
}

func (e *UnsupportedFileTypeError) Code() string {
	return apperrors.ErrInvalidArgument
}

// NewUnsupportedFileTypeError creates a new UnsupportedFileTypeError
func NewUnsupportedFileTypeError(mimeType string) *UnsupportedFileTypeError {
	return &UnsupportedFileTypeError{MimeType: mimeType}
}
