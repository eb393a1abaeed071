package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// BudgetRequest is a department's request for funds for one fiscal year.
type BudgetRequest struct {
	ID                 int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	DepartmentName     string          `gorm:"size:200;not null;index:idx_budget_requests_department" json:"department_name"`
	DepartmentCode     *string         `gorm:"size:50" json:"department_code,omitempty"`
	ContactPerson      string          `gorm:"size:200;not null" json:"contact_person"`
	ContactEmail       string          `gorm:"size:255;not null" json:"contact_email"`
	ContactPhone       *string         `gorm:"size:50" json:"contact_phone,omitempty"`
	FiscalYear         int             `gorm:"not null;index:idx_budget_requests_fiscal_year" json:"fiscal_year"`
	RequestTitle       string          `gorm:"size:500;not null" json:"request_title"`
	RequestDescription string          `gorm:"type:text;not null" json:"request_description"`
	Justification      string          `gorm:"type:text;not null" json:"justification"`
	ExpectedOutcomes   string          `gorm:"type:text;not null" json:"expected_outcomes"`
	PriorityLevel      PriorityLevel   `gorm:"size:20;not null;default:medium;index:idx_budget_requests_priority" json:"priority_level"`
	TotalAmount        decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"total_amount"`
	Status             RequestStatus   `gorm:"size:30;not null;default:draft;index:idx_budget_requests_status" json:"status"`
	TimelineStart      *datatypes.Date `json:"timeline_start,omitempty"`
	TimelineEnd        *datatypes.Date `json:"timeline_end,omitempty"`
	SubmittedAt        *time.Time      `json:"submitted_at,omitempty"`
	ReviewedAt         *time.Time      `json:"reviewed_at,omitempty"`
	ReviewerNotes      *string         `gorm:"type:text" json:"reviewer_notes,omitempty"`
	CreatedAt          time.Time       `gorm:"not null;index:idx_budget_requests_created" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"not null;autoUpdateTime:false" json:"updated_at"`

	// Relations
	Items []BudgetItem     `gorm:"foreignKey:BudgetRequestID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	Files []FileAttachment `gorm:"foreignKey:BudgetRequestID;constraint:OnDelete:CASCADE" json:"files,omitempty"`
}

// TableName specifies the table name for GORM
func (BudgetRequest) TableName() string {
	return "budget_requests"
}
