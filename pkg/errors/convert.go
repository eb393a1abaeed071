package errors

import "net/http"

// code -> HTTP status
var codeMapping = map[string]int{
	ErrInternal:           http.StatusInternalServerError,
	ErrNotFound:           http.StatusNotFound,
	ErrInvalidArgument:    http.StatusBadRequest,
	ErrConflict:           http.StatusConflict,
	ErrFailedPrecondition: http.StatusConflict,
	ErrUnprocessable:      http.StatusUnprocessableEntity,
	ErrMethodNotAllowed:   http.StatusMethodNotAllowed,
	ErrPayloadTooLarge:    http.StatusRequestEntityTooLarge,
}

// GetCodeMapping returns the HTTP status registered for an error code.
// Unknown codes map to 500.
func GetCodeMapping(code string) int {
	if status, ok := codeMapping[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
