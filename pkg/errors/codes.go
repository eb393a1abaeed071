package errors

// Common error codes
const (
	ErrInternal           = "INTERNAL"
	ErrNotFound           = "NOT_FOUND"
	ErrInvalidArgument    = "INVALID_ARGUMENT"
	ErrConflict           = "CONFLICT"
	ErrFailedPrecondition = "FAILED_PRECONDITION"
	ErrUnprocessable      = "UNPROCESSABLE"
	ErrMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	ErrPayloadTooLarge    = "PAYLOAD_TOO_LARGE"
)
