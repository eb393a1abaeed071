package dto

import (
	"github.com/shopspring/decimal"

	"github.com/wekeepgrowing/gov-budget-request-form/internal/domain/model"
)

// CreateBudgetItemInput is the raw create-item payload.
type CreateBudgetItemInput struct {
	Category        string           `json:"category"`
	ItemDescription string           `json:"item_description"`
	Unit            *string          `json:"unit"`
	Quantity        *int             `json:"quantity"`
	UnitCost        *decimal.Decimal `json:"unit_cost"`
	TotalCost       *decimal.Decimal `json:"total_cost"`
	Justification   *string          `json:"justification"`
}

// UpdateBudgetItemInput is the raw partial item update payload.
type UpdateBudgetItemInput struct {
	Category        Optional[string]          `json:"category"`
	ItemDescription Optional[string]          `json:"item_description"`
	Unit            Optional[string]          `json:"unit"`
	Quantity        Optional[int]             `json:"quantity"`
	UnitCost        Optional[decimal.Decimal] `json:"unit_cost"`
	TotalCost       Optional[decimal.Decimal] `json:"total_cost"`
	Justification   Optional[string]          `json:"justification"`
}

// BudgetItemPatch is a validated UpdateBudgetItemInput.
type BudgetItemPatch struct {
	Category        Optional[model.ItemCategory]
	ItemDescription Optional[string]
	Unit            Optional[string]
	Quantity        Optional[int]
	UnitCost        Optional[decimal.Decimal]
	TotalCost       Optional[decimal.Decimal]
	Justification   Optional[string]
}

// ApplyTo copies the set fields onto item. When unit_cost or quantity
// changes without an explicit total_cost, total_cost becomes
// unit_cost * quantity using the stored value for the one not supplied.
func (p *BudgetItemPatch) ApplyTo(item *model.BudgetItem) {
	setValue(p.Category, &item.Category)
	setValue(p.ItemDescription, &item.ItemDescription)
	setNullable(p.Unit, &item.Unit)
	setNullable(p.Quantity, &item.Quantity)
	setValue(p.UnitCost, &item.UnitCost)
	setNullable(p.Justification, &item.Justification)

	switch {
	case p.TotalCost.HasValue():
		item.TotalCost, _ = p.TotalCost.Value()
	case p.UnitCost.IsSet() || p.Quantity.IsSet():
		item.TotalCost = ComputeTotalCost(item.UnitCost, item.Quantity)
	}
}

// ComputeTotalCost returns unitCost * quantity, with a nil quantity as 1.
func ComputeTotalCost(unitCost decimal.Decimal, quantity *int) decimal.Decimal {
	if quantity == nil {
		return unitCost
	}
	return unitCost.Mul(decimal.NewFromInt(int64(*quantity)))
}
