package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/gov-budget-request-form/internal/domain/dto"
	domainErrors "github.com/wekeepgrowing/gov-budget-request-form/internal/domain/errors"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/validation"
	apperrors "github.com/wekeepgrowing/gov-budget-request-form/pkg/errors"
)

// respondError writes err as an ErrorResponse with the status mapped from
// its code. Internal failures are logged and their details withheld.
func respondError(c echo.Context, logger *zap.Logger, err error) error {
	code := apperrors.CodeOf(err)
	status := apperrors.ToHTTPStatus(code)

	body := dto.ErrorResponse{Error: err.Error(), Code: code}
	var validationErr *domainErrors.ValidationError
	if apperrors.As(err, &validationErr) {
		body.Violations = validationErr.Violations
	}

	if status >= http.StatusInternalServerError {
		apperrors.LogError(logger, err, "Request failed",
			zap.String("method", c.Request().Method),
			zap.String("route", c.Path()))
		body.Error = "internal server error"
	}
	return c.JSON(status, body)
}

// ErrorHandler renders errors raised outside the handlers, such as unknown
// routes, oversized bodies and recovered panics, as an ErrorResponse.
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		err = apperrors.FromHTTPError(err)
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(apperrors.ToHTTPStatus(apperrors.CodeOf(err)))
		} else {
			err = respondError(c, logger, err)
		}
		if err != nil {
			logger.Error("Failed to write error response", zap.Error(err))
		}
	}
}

func invalidBody(err error) error {
	return domainErrors.NewValidationError(domainErrors.Violation{
		Field:   "body",
		Rule:    "json",
		Message: "request body is not valid JSON: " + err.Error(),
	})
}

// pathID parses a positive integer path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domainErrors.NewValidationError(domainErrors.Violation{
			Field:   name,
			Rule:    validation.RuleInteger,
			Message: "must be a positive integer",
		})
	}
	return id, nil
}
