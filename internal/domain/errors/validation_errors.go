package errors

import (
	"fmt"
	"strings"

	apperrors "github.com/wekeepgrowing/gov-budget-request-form/pkg/errors"
)

// Violation is a single failed field constraint.
type Violation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError lists every violation found in a payload.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = fmt.Sprintf("%s: %s", v.Field, v.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Code() string {
	return apperrors.ErrInvalidArgument
}

// Fields returns the violated field names in order, without duplicates.
func (e *ValidationError) Fields() []string {
	seen := make(map[string]struct{}, len(e.Violations))
	fields := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		if _, ok := seen[v.Field]; ok {
			continue
		}
		seen[v.Field] = struct{}{}
		fields = append(fields, v.Field)
	}
	return fields
}

// NewValidationError creates a new ValidationError
func NewValidationError(violations ...Violation) *ValidationError {
	return &ValidationError{Violations: violations}
}
