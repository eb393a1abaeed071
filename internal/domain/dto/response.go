package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/wekeepgrowing/gov-budget-request-form/internal/domain/model"
)

const dateLayout = "2006-01-02"

// BudgetRequestResponse represents a budget request for API responses.
// Amounts are JSON numbers with exact decimal digits.
type BudgetRequestResponse struct {
	ID                 int64       `json:"id"`
	DepartmentName     string      `json:"department_name"`
	DepartmentCode     *string     `json:"department_code"`
	ContactPerson      string      `json:"contact_person"`
	ContactEmail       string      `json:"contact_email"`
	ContactPhone       *string     `json:"contact_phone"`
	FiscalYear         int         `json:"fiscal_year"`
	RequestTitle       string      `json:"request_title"`
	RequestDescription string      `json:"request_description"`
	Justification      string      `json:"justification"`
	ExpectedOutcomes   string      `json:"expected_outcomes"`
	PriorityLevel      string      `json:"priority_level"`
	TotalAmount        json.Number `json:"total_amount"`
	Status             string      `json:"status"`
	TimelineStart      *string     `json:"timeline_start"`
	TimelineEnd        *string     `json:"timeline_end"`
	SubmittedAt        *time.Time  `json:"submitted_at"`
	ReviewedAt         *time.Time  `json:"reviewed_at"`
	ReviewerNotes      *string     `json:"reviewer_notes"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

// BudgetItemResponse represents a budget item for API responses
type BudgetItemResponse struct {
	ID              int64       `json:"id"`
	BudgetRequestID int64       `json:"budget_request_id"`
	Category        string      `json:"category"`
	ItemDescription string      `json:"item_description"`
	Unit            *string     `json:"unit"`
	Quantity        *int        `json:"quantity"`
	UnitCost        json.Number `json:"unit_cost"`
	TotalCost       json.Number `json:"total_cost"`
	Justification   *string     `json:"justification"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// FileAttachmentResponse represents file metadata for API responses
type FileAttachmentResponse struct {
	ID               int64     `json:"id"`
	BudgetRequestID  int64     `json:"budget_request_id"`
	Filename         string    `json:"filename"`
	OriginalFilename string    `json:"original_filename"`
	FileSize         int64     `json:"file_size"`
	MimeType         string    `json:"mime_type"`
	UploadedAt       time.Time `json:"uploaded_at"`
}

// RequestDetailResponse is a request with its items and files.
type RequestDetailResponse struct {
	BudgetRequestResponse
	Items []BudgetItemResponse     `json:"items"`
	Files []FileAttachmentResponse `json:"files"`
}

// RequestListResponse represents the paginated request list response
type RequestListResponse struct {
	Data       []BudgetRequestResponse `json:"data"`
	Pagination PaginationInfo          `json:"pagination"`
}

// PaginationInfo contains pagination metadata
type PaginationInfo struct {
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"has_more"`
}

// DeleteResponse reports whether a delete removed anything.
type DeleteResponse struct {
	Success bool `json:"success"`
}

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Error      string      `json:"error"`
	Code       string      `json:"code"`
	Violations interface{} `json:"violations,omitempty"`
}

// DecimalNumber renders d as a JSON number without going through float64.
func DecimalNumber(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

func formatDate(d *datatypes.Date) *string {
	if d == nil {
		return nil
	}
	s := time.Time(*d).Format(dateLayout)
	return &s
}

// NewBudgetRequestResponse converts a model to its API form.
func NewBudgetRequestResponse(r *model.BudgetRequest) BudgetRequestResponse {
	return BudgetRequestResponse{
		ID:                 r.ID,
		DepartmentName:     r.DepartmentName,
		DepartmentCode:     r.DepartmentCode,
		ContactPerson:      r.ContactPerson,
		ContactEmail:       r.ContactEmail,
		ContactPhone:       r.ContactPhone,
		FiscalYear:         r.FiscalYear,
		RequestTitle:       r.RequestTitle,
		RequestDescription: r.RequestDescription,
		Justification:      r.Justification,
		ExpectedOutcomes:   r.ExpectedOutcomes,
		PriorityLevel:      string(r.PriorityLevel),
		TotalAmount:        DecimalNumber(r.TotalAmount),
		Status:             string(r.Status),
		TimelineStart:      formatDate(r.TimelineStart),
		TimelineEnd:        formatDate(r.TimelineEnd),
		SubmittedAt:        r.SubmittedAt,
		ReviewedAt:         r.ReviewedAt,
		ReviewerNotes:      r.ReviewerNotes,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

// NewBudgetItemResponse converts a model to its API form.
func NewBudgetItemResponse(i *model.BudgetItem) BudgetItemResponse {
	return BudgetItemResponse{
		ID:              i.ID,
		BudgetRequestID: i.BudgetRequestID,
		Category:        string(i.Category),
		ItemDescription: i.ItemDescription,
		Unit:            i.Unit,
		Quantity:        i.Quantity,
		UnitCost:        DecimalNumber(i.UnitCost),
		TotalCost:       DecimalNumber(i.TotalCost),
		Justification:   i.Justification,
		CreatedAt:       i.CreatedAt,
		UpdatedAt:       i.UpdatedAt,
	}
}

// NewFileAttachmentResponse converts a model to its API form. The storage
// path is not exposed.
func NewFileAttachmentResponse(f *model.FileAttachment) FileAttachmentResponse {
	return FileAttachmentResponse{
		ID:               f.ID,
		BudgetRequestID:  f.BudgetRequestID,
		Filename:         f.Filename,
		OriginalFilename: f.OriginalFilename,
		FileSize:         f.FileSize,
		MimeType:         f.MimeType,
		UploadedAt:       f.UploadedAt,
	}
}

// NewBudgetItemResponses converts a slice of items.
func NewBudgetItemResponses(items []model.BudgetItem) []BudgetItemResponse {
	out := make([]BudgetItemResponse, len(items))
	for i := range items {
		out[i] = NewBudgetItemResponse(&items[i])
	}
	return out
}

// NewFileAttachmentResponses converts a slice of files.
func NewFileAttachmentResponses(files []model.FileAttachment) []FileAttachmentResponse {
	out := make([]FileAttachmentResponse, len(files))
	for i := range files {
		out[i] = NewFileAttachmentResponse(&files[i])
	}
	return out
}

// NewRequestDetailResponse converts a detail view.
func NewRequestDetailResponse(d *RequestDetail) RequestDetailResponse {
	return RequestDetailResponse{
		BudgetRequestResponse: NewBudgetRequestResponse(d.Request),
		Items:                 NewBudgetItemResponses(d.Items),
		Files:                 NewFileAttachmentResponses(d.Files),
	}
}

// NewRequestListResponse converts a page.
func NewRequestListResponse(p *RequestPage) RequestListResponse {
	data := make([]BudgetRequestResponse, len(p.Data))
	for i := range p.Data {
		data[i] = NewBudgetRequestResponse(&p.Data[i])
	}
	return RequestListResponse{
		Data: data,
		Pagination: PaginationInfo{
			Total:   p.Total,
			Limit:   p.Limit,
			Offset:  p.Offset,
			HasMore: p.HasMore,
		},
	}
}
