package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetItem is one line of a budget request.
type BudgetItem struct {
	ID              int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	BudgetRequestID int64           `gorm:"not null;index:idx_budget_items_request" json:"budget_request_id"`
	Category        ItemCategory    `gorm:"size:30;not null" json:"category"`
	ItemDescription string          `gorm:"type:text;not null" json:"item_description"`
	Unit            *string         `gorm:"size:50" json:"unit,omitempty"`
	Quantity        *int            `json:"quantity,omitempty"`
	UnitCost        decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"unit_cost"`
	TotalCost       decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"total_cost"`
	Justification   *string         `gorm:"type:text" json:"justification,omitempty"`
	CreatedAt       time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"not null;autoUpdateTime:false" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (BudgetItem) TableName() string {
	return "budget_items"
}

// EffectiveQuantity returns the quantity, treating an unset value as 1.
func (i *BudgetItem) EffectiveQuantity() int {
	if i.Quantity == nil {
		return 1
	}
	return *i.Quantity
}
