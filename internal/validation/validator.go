// Package validation turns raw payloads into typed values or a
// ValidationError listing every violated constraint.
package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	domainerrors "github.com/wekeepgrowing/gov-budget-request-form/internal/domain/errors"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/domain/model"
)

// Rule names for constraints checked outside validator tags.
const (
	RuleNotNull  = "not_null"
	RuleDate     = "date"
	RuleInteger  = "integer"
	RuleRequired = "required"
	RulePositive = "gt"
	RuleMinimum  = "gte"
	RuleMaximum  = "lte"
	RuleScale    = "scale"
)

const (
	statusTag   = "oneof=draft submitted under_review approved rejected revision_requested"
	priorityTag = "oneof=low medium high critical"
	categoryTag = "oneof=personnel equipment supplies services travel training infrastructure other"
)

// ruleMessages maps validator tags to violation messages.
var ruleMessages = map[string]func(param string) string{
	"required":  func(string) string { return "is required" },
	"notblank":  func(string) string { return "must not be blank" },
	"min":       func(p string) string { return fmt.Sprintf("must be at least %s characters", p) },
	"max":       func(p string) string { return fmt.Sprintf("must be at most %s characters", p) },
	"gt":        func(p string) string { return fmt.Sprintf("must be greater than %s", p) },
	"gte":       func(p string) string { return fmt.Sprintf("must be at least %s", p) },
	"lte":       func(p string) string { return fmt.Sprintf("must be at most %s", p) },
	"email":     func(string) string { return "must be a valid email address" },
	"oneof":     func(p string) string { return fmt.Sprintf("must be one of [%s]", p) },
	RuleNotNull: func(string) string { return "must not be null" },
	RuleDate:    func(string) string { return "must be a date in YYYY-MM-DD or RFC 3339 format" },
	RuleInteger: func(string) string { return "must be an integer" },
	RuleScale:   func(p string) string { return fmt.Sprintf("must have at most %s decimal places", p) },
}

func messageFor(rule, param string) string {
	if format, ok := ruleMessages[rule]; ok {
		return format(param)
	}
	return fmt.Sprintf("failed %s validation", rule)
}

// Validator validates create, update and list payloads. It is safe for
// concurrent use.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the custom rules registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}); err != nil {
		panic(fmt.Sprintf("failed to register notblank validation: %v", err))
	}
	return &Validator{validate: v}
}

// collector accumulates violations in the order fields are checked.
type collector struct {
	validate   *validator.Validate
	violations []domainerrors.Violation
}

func (v *Validator) newCollector() *collector {
	return &collector{validate: v.validate}
}

func (c *collector) add(field, rule, param string) {
	c.violations = append(c.violations, domainerrors.Violation{
		Field:   field,
		Rule:    rule,
		Message: messageFor(rule, param),
	})
}

// check evaluates tag against value and records the first failing rule.
func (c *collector) check(field string, value interface{}, tag string) bool {
	err := c.validate.Var(value, tag)
	if err == nil {
		return true
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		c.add(field, fieldErrs[0].Tag(), fieldErrs[0].Param())
		return false
	}
	c.add(field, "invalid", "")
	return false
}

func (c *collector) positive(field string, d decimal.Decimal) bool {
	if !d.IsPositive() {
		c.add(field, RulePositive, "0")
		return false
	}
	return c.amount(field, d)
}

func (c *collector) nonNegative(field string, d decimal.Decimal) bool {
	if d.IsNegative() {
		c.add(field, RuleMinimum, "0")
		return false
	}
	return c.amount(field, d)
}

// amount checks that d fits a money column without rounding.
func (c *collector) amount(field string, d decimal.Decimal) bool {
	if !d.Equal(d.Round(model.AmountScale)) {
		c.add(field, RuleScale, strconv.Itoa(model.AmountScale))
		return false
	}
	if d.GreaterThan(model.MaxAmount) {
		c.add(field, RuleMaximum, model.MaxAmount.StringFixed(model.AmountScale))
		return false
	}
	return true
}

func (c *collector) notNull(field string, isNull bool) bool {
	if isNull {
		c.add(field, RuleNotNull, "")
		return false
	}
	return true
}

func (c *collector) date(field, value string) (datatypes.Date, bool) {
	d, err := ParseDate(value)
	if err != nil {
		c.add(field, RuleDate, "")
		return datatypes.Date{}, false
	}
	return d, true
}

func (c *collector) integer(field, value string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		c.add(field, RuleInteger, "")
		return 0, false
	}
	return n, true
}

// CheckAmount returns a ValidationError when a computed amount does not fit
// a money column.
func CheckAmount(field string, d decimal.Decimal) error {
	c := &collector{}
	c.amount(field, d)
	return c.err()
}

func (c *collector) err() error {
	if len(c.violations) == 0 {
		return nil
	}
	return domainerrors.NewValidationError(c.violations...)
}

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp and returns the
// calendar date it names.
func ParseDate(value string) (datatypes.Date, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return datatypes.Date(t), nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return datatypes.Date{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return datatypes.Date(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)), nil
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
