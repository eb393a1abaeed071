package errors

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	apperrors "github.com/wekeepgrowing/gov-budget-request-form/pkg/errors"
)

// Entity names used in NotFoundError.
const (
	EntityBudgetRequest  = "budget request"
	EntityBudgetItem     = "budget item"
	EntityFileAttachment = "file attachment"
)

// NotFoundError is returned when a referenced entity does not exist
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Code() string {
	return apperrors.ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(entity string, id int64) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// InvalidTransitionError is returned when a status change is not allowed
// from the current status.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot move budget request from %s to %s", e.From, e.To)
}

func (e *InvalidTransitionError) Code() string {
	return apperrors.ErrFailedPrecondition
}

// NewInvalidTransitionError creates a new InvalidTransitionError
func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

// MissingFieldsError is returned when a request is submitted without all
// required fields.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

func (e *MissingFieldsError) Code() string {
	return apperrors.ErrUnprocessable
}

// NewMissingFieldsError creates a new MissingFieldsError
func NewMissingFieldsError(fields []string) *MissingFieldsError {
	return &MissingFieldsError{Fields: fields}
}

// InvalidAmountError is returned when a request total is not positive at
// submission.
type InvalidAmountError struct {
	Amount decimal.Decimal
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("total amount must be greater than zero, got %s", e.Amount.String())
}

func (e *InvalidAmountError) Code() string {
	return apperrors.ErrUnprocessable
}

// NewInvalidAmountError creates a new InvalidAmountError
func NewInvalidAmountError(amount decimal.Decimal) *InvalidAmountError {
	return &InvalidAmountError{Amount: amount}
}

// NotPermittedError is returned when the parent request's status forbids
// the attempted action.
type NotPermittedError struct {
	Status string
	Action string
}

func (e *NotPermittedError) Error() string {
	return fmt.Sprintf("cannot %s while budget request is %s", e.Action, e.Status)
}

func (e *NotPermittedError) Code() string {
	return apperrors.ErrFailedPrecondition
}

// NewNotPermittedError creates a new NotPermittedError
func NewNotPermittedError(status, action string) *NotPermittedError {
	return &NotPermittedError{Status: status, Action: action}
}
