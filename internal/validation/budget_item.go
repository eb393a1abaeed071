package validation

import (
	"strings"

	"github.com/wekeepgrowing/gov-budget-request-form/internal/domain/dto"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/domain/model"
)

const (
	itemDescriptionTag = "required,notblank"
	unitTag            = "max=50"
	quantityTag        = "gt=0"
)

// CreateItem validates a create-item payload. When total_cost is omitted it
// is derived as unit_cost * quantity. The returned item has no parent set.
func (v *Validator) CreateItem(in dto.CreateBudgetItemInput) (*model.BudgetItem, error) {
	c := v.newCollector()

	category := strings.TrimSpace(in.Category)
	item := &model.BudgetItem{
		Category:        model.ItemCategory(category),
		ItemDescription: strings.TrimSpace(in.ItemDescription),
		Unit:            trimPtr(in.Unit),
		Quantity:        in.Quantity,
		Justification:   in.Justification,
	}

	c.check("category", category, "required,"+categoryTag)
	c.check("item_description", item.ItemDescription, itemDescriptionTag)
	if item.Unit != nil {
		c.check("unit", *item.Unit, unitTag)
	}
	if item.Quantity != nil {
		c.check("quantity", *item.Quantity, quantityTag)
	}
	unitCostOK := false
	if in.UnitCost == nil {
		c.add("unit_cost", RuleRequired, "")
	} else if unitCostOK = c.positive("unit_cost", *in.UnitCost); unitCostOK {
		item.UnitCost = *in.UnitCost
	}
	if in.TotalCost != nil {
		if c.positive("total_cost", *in.TotalCost) {
			item.TotalCost = *in.TotalCost
		}
	} else if unitCostOK {
		item.TotalCost = dto.ComputeTotalCost(item.UnitCost, item.Quantity)
		c.amount("total_cost", item.TotalCost)
	}

	if err := c.err(); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem validates a partial item update.
func (v *Validator) UpdateItem(in dto.UpdateBudgetItemInput) (*dto.BudgetItemPatch, error) {
	c := v.newCollector()

	patch := &dto.BudgetItemPatch{
		ItemDescription: dto.Map(in.ItemDescription, strings.TrimSpace),
		Unit:            dto.Map(in.Unit, strings.TrimSpace),
		Quantity:        in.Quantity,
		UnitCost:        in.UnitCost,
		TotalCost:       in.TotalCost,
		Justification:   in.Justification,
	}

	if in.Category.IsSet() && c.notNull("category", in.Category.IsNull()) {
		category, _ := dto.Map(in.Category, strings.TrimSpace).Value()
		if c.check("category", category, categoryTag) {
			patch.Category = dto.Some(model.ItemCategory(category))
		}
	}
	requiredString(c, "item_description", patch.ItemDescription, itemDescriptionTag)
	nullableString(c, "unit", patch.Unit, unitTag)
	if quantity, ok := patch.Quantity.Value(); ok {
		c.check("quantity", quantity, quantityTag)
	}
	if patch.UnitCost.IsSet() && c.notNull("unit_cost", patch.UnitCost.IsNull()) {
		cost, _ := patch.UnitCost.Value()
		c.positive("unit_cost", cost)
	}
	if patch.TotalCost.IsSet() && c.notNull("total_cost", patch.TotalCost.IsNull()) {
		cost, _ := patch.TotalCost.Value()
		c.positive("total_cost", cost)
	}

	if err := c.err(); err != nil {
		return nil, err
	}
	return patch, nil
}
