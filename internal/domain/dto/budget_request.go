package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/wekeepgrowing/gov-budget-request-form/internal/domain/model"
)

// CreateBudgetRequestInput is the raw create-request payload.
type CreateBudgetRequestInput struct {
	DepartmentName     string           `json:"department_name"`
	DepartmentCode     *string          `json:"department_code"`
	ContactPerson      string           `json:"contact_person"`
	ContactEmail       string           `json:"contact_email"`
	ContactPhone       *string          `json:"contact_phone"`
	FiscalYear         int              `json:"fiscal_year"`
	RequestTitle       string           `json:"request_title"`
	RequestDescription string           `json:"request_description"`
	Justification      string           `json:"justification"`
	ExpectedOutcomes   string           `json:"expected_outcomes"`
	PriorityLevel      *string          `json:"priority_level"`
	TotalAmount        *decimal.Decimal `json:"total_amount"`
	TimelineStart      *string          `json:"timeline_start"`
	TimelineEnd        *string          `json:"timeline_end"`
}

// UpdateBudgetRequestInput is the raw partial update payload. Omitted fields
// stay unchanged, null clears nullable fields.
type UpdateBudgetRequestInput struct {
	DepartmentName     Optional[string]          `json:"department_name"`
	DepartmentCode     Optional[string]          `json:"department_code"`
	ContactPerson      Optional[string]          `json:"contact_person"`
	ContactEmail       Optional[string]          `json:"contact_email"`
	ContactPhone       Optional[string]          `json:"contact_phone"`
	FiscalYear         Optional[int]             `json:"fiscal_year"`
	RequestTitle       Optional[string]          `json:"request_title"`
	RequestDescription Optional[string]          `json:"request_description"`
	Justification      Optional[string]          `json:"justification"`
	ExpectedOutcomes   Optional[string]          `json:"expected_outcomes"`
	PriorityLevel      Optional[string]          `json:"priority_level"`
	TotalAmount        Optional[decimal.Decimal] `json:"total_amount"`
	Status             Optional[string]          `json:"status"`
	TimelineStart      Optional[string]          `json:"timeline_start"`
	TimelineEnd        Optional[string]          `json:"timeline_end"`
	ReviewedAt         Optional[time.Time]       `json:"reviewed_at"`
	ReviewerNotes      Optional[string]          `json:"reviewer_notes"`
}

// BudgetRequestPatch is a validated UpdateBudgetRequestInput.
type BudgetRequestPatch struct {
	DepartmentName     Optional[string]
	DepartmentCode     Optional[string]
	ContactPerson      Optional[string]
	ContactEmail       Optional[string]
	ContactPhone       Optional[string]
	FiscalYear         Optional[int]
	RequestTitle       Optional[string]
	RequestDescription Optional[string]
	Justification      Optional[string]
	ExpectedOutcomes   Optional[string]
	PriorityLevel      Optional[model.PriorityLevel]
	TotalAmount        Optional[decimal.Decimal]
	Status             Optional[model.RequestStatus]
	TimelineStart      Optional[datatypes.Date]
	TimelineEnd        Optional[datatypes.Date]
	ReviewedAt         Optional[time.Time]
	ReviewerNotes      Optional[string]
}

// TouchesMetadata reports whether the patch changes anything other than the
// reviewer decision fields.
func (p *BudgetRequestPatch) TouchesMetadata() bool {
	return p.DepartmentName.IsSet() || p.DepartmentCode.IsSet() ||
		p.ContactPerson.IsSet() || p.ContactEmail.IsSet() || p.ContactPhone.IsSet() ||
		p.FiscalYear.IsSet() || p.RequestTitle.IsSet() || p.RequestDescription.IsSet() ||
		p.Justification.IsSet() || p.ExpectedOutcomes.IsSet() || p.PriorityLevel.IsSet() ||
		p.TotalAmount.IsSet() || p.TimelineStart.IsSet() || p.TimelineEnd.IsSet()
}

// ApplyTo copies every set field onto req. Required fields are never null in
// a validated patch.
func (p *BudgetRequestPatch) ApplyTo(req *model.BudgetRequest) {
	setValue(p.DepartmentName, &req.DepartmentName)
	setNullable(p.DepartmentCode, &req.DepartmentCode)
	setValue(p.ContactPerson, &req.ContactPerson)
	setValue(p.ContactEmail, &req.ContactEmail)
	setNullable(p.ContactPhone, &req.ContactPhone)
	setValue(p.FiscalYear, &req.FiscalYear)
	setValue(p.RequestTitle, &req.RequestTitle)
	setValue(p.RequestDescription, &req.RequestDescription)
	setValue(p.Justification, &req.Justification)
	setValue(p.ExpectedOutcomes, &req.ExpectedOutcomes)
	setValue(p.PriorityLevel, &req.PriorityLevel)
	setValue(p.TotalAmount, &req.TotalAmount)
	setValue(p.Status, &req.Status)
	setNullable(p.TimelineStart, &req.TimelineStart)
	setNullable(p.TimelineEnd, &req.TimelineEnd)
	setNullable(p.ReviewedAt, &req.ReviewedAt)
	setNullable(p.ReviewerNotes, &req.ReviewerNotes)
}

func setValue[T any](o Optional[T], dst *T) {
	if v, ok := o.Value(); ok {
		*dst = v
	}
}

func setNullable[T any](o Optional[T], dst **T) {
	if o.IsSet() {
		*dst = o.Ptr()
	}
}

// RequestFiltersInput holds raw list query parameters.
type RequestFiltersInput struct {
	DepartmentName string `query:"department_name"`
	FiscalYear     string `query:"fiscal_year"`
	Status         string `query:"status"`
	PriorityLevel  string `query:"priority_level"`
	Limit          string `query:"limit"`
	Offset         string `query:"offset"`
}

// Pagination defaults and bounds.
const (
	DefaultLimit  = 20
	MaxLimit      = 100
	DefaultOffset = 0
)

// RequestFilters contains query filters for budget request retrieval
type RequestFilters struct {
	DepartmentName *string
	FiscalYear     *int
	Status         *model.RequestStatus
	PriorityLevel  *model.PriorityLevel
	Limit          int
	Offset         int
}

// SetDefaults sets default values for pagination
func (f *RequestFilters) SetDefaults() {
	if f.Limit == 0 {
		f.Limit = DefaultLimit
	}
	if f.Offset < 0 {
		f.Offset = DefaultOffset
	}
}

// RequestPage is one page of budget requests.
type RequestPage struct {
	Data    []model.BudgetRequest
	Total   int64
	Limit   int
	Offset  int
	HasMore bool
}

// NewRequestPage builds a page and computes HasMore.
func NewRequestPage(data []model.BudgetRequest, total int64, limit, offset int) *RequestPage {
	if data == nil {
		data = []model.BudgetRequest{}
	}
	return &RequestPage{
		Data:    data,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+limit) < total,
	}
}

// RequestDetail is a request with its items and files.
type RequestDetail struct {
	Request *model.BudgetRequest
	Items   []model.BudgetItem
	Files   []model.FileAttachment
}
