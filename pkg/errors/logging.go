package errors

import (
	"go.uber.org/zap"
)

// LogError writes err as a structured log entry, adding its error code when
// the chain carries one.
func LogError(logger *zap.Logger, err error, msg string, fields ...zap.Field) {
	if err == nil {
		return
	}

	allFields := make([]zap.Field, 0, len(fields)+2)
	allFields = append(allFields, zap.Error(err))

	var coder Coder
	if As(err, &coder) {
		allFields = append(allFields, zap.String("error_code", coder.Code()))
	}

	allFields = append(allFields, fields...)

	logger.Error(msg, allFields...)
}
