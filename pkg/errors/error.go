package errors

import (
	"errors"
	"fmt"
)

// Re-exported from the standard library so callers need a single import.
var (
	New    = errors.New
	Unwrap = errors.Unwrap
	Is     = errors.Is
	As     = errors.As
)

// Coder is implemented by every error that carries an application error code.
type Coder interface {
	Code() string
}

// Error extends the builtin error with a code and a cause.
type Error interface {
	error
	Coder
	Unwrap() error
}

// AppError is the default Error implementation.
type AppError struct {
	code    string
	message string
	err     error
}

func (e *AppError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s", e.message, e.err.Error())
	}
	return e.message
}

func (e *AppError) Code() string {
	return e.code
}

func (e *AppError) Unwrap() error {
	return e.err
}

// NewAppError creates a new application error.
func NewAppError(code string, message string, err error) *AppError {
	return &AppError{
		code:    code,
		message: message,
		err:     err,
	}
}

// Wrap wraps err with a message. The code of the first coded error in the
// chain is kept; anything else becomes INTERNAL.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	return NewAppError(CodeOf(err), message, err)
}

// CodeOf returns the code of the first coded error in err's chain, or
// INTERNAL when there is none.
func CodeOf(err error) string {
	var coder Coder
	if As(err, &coder) {
		return coder.Code()
	}
	return ErrInternal
}
