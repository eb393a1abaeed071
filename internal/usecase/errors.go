package usecase

import (
	apperrors "github.com/wekeepgrowing/gov-budget-request-form/pkg/errors"
)

// storageError passes coded errors through and marks everything else as an
// internal failure.
func storageError(err error, message string) error {
	if err == nil {
		return nil
	}
	var coder apperrors.Coder
	if apperrors.As(err, &coder) {
		return err
	}
	return apperrors.Wrap(err, message)
}

// isRejection reports whether err is a business rule failure rather than a
// storage failure.
func isRejection(err error) bool {
	return err != nil && apperrors.CodeOf(err) != apperrors.ErrInternal
}
