package errors

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ToHTTPStatus converts an error code to an HTTP status code.
func ToHTTPStatus(code string) int {
	return GetCodeMapping(code)
}

// FromHTTPError converts an echo HTTP error to an internal error. Coded
// errors pass through; anything else becomes INTERNAL.
func FromHTTPError(err error) error {
	if err == nil {
		return nil
	}

	var coder Coder
	if As(err, &coder) {
		return err
	}

	var echoErr *echo.HTTPError
	if As(err, &echoErr) {
		code := httpStatusToCode(echoErr.Code)
		msg, ok := echoErr.Message.(string)
		if !ok {
			msg = http.StatusText(echoErr.Code)
		}
		return NewAppError(code, msg, nil)
	}

	return NewAppError(ErrInternal, err.Error(), err)
}

func httpStatusToCode(status int) string {
	switch status {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest:
		return ErrInvalidArgument
	case http.StatusMethodNotAllowed:
		return ErrMethodNotAllowed
	case http.StatusConflict:
		return ErrConflict
	case http.StatusRequestEntityTooLarge:
		return ErrPayloadTooLarge
	case http.StatusUnprocessableEntity:
		return ErrUnprocessable
	default:
		return ErrInternal
	}
}
