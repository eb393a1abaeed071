package validation

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/wekeepgrowing/gov-budget-request-form/internal/domain/dto"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/domain/model"
)

// Tags shared by create and update.
const (
	departmentNameTag     = "required,notblank,max=200"
	departmentCodeTag     = "max=50"
	contactPersonTag      = "required,notblank,max=200"
	contactEmailTag       = "required,email,max=255"
	contactPhoneTag       = "max=50"
	fiscalYearTag         = "gte=2020,lte=2050"
	requestTitleTag       = "required,notblank,max=500"
	requestDescriptionTag = "required,min=10"
	justificationTag      = "required,min=20"
	expectedOutcomesTag   = "required,min=10"
)

// CreateRequest validates a create payload and returns a draft request.
func (v *Validator) CreateRequest(in dto.CreateBudgetRequestInput) (*model.BudgetRequest, error) {
	c := v.newCollector()

	req := &model.BudgetRequest{
		DepartmentName:     strings.TrimSpace(in.DepartmentName),
		DepartmentCode:     trimPtr(in.DepartmentCode),
		ContactPerson:      strings.TrimSpace(in.ContactPerson),
		ContactEmail:       strings.TrimSpace(in.ContactEmail),
		ContactPhone:       trimPtr(in.ContactPhone),
		FiscalYear:         in.FiscalYear,
		RequestTitle:       strings.TrimSpace(in.RequestTitle),
		RequestDescription: strings.TrimSpace(in.RequestDescription),
		Justification:      strings.TrimSpace(in.Justification),
		ExpectedOutcomes:   strings.TrimSpace(in.ExpectedOutcomes),
		PriorityLevel:      model.PriorityMedium,
		TotalAmount:        decimal.Zero,
		Status:             model.StatusDraft,
	}

	c.check("department_name", req.DepartmentName, departmentNameTag)
	if req.DepartmentCode != nil {
		c.check("department_code", *req.DepartmentCode, departmentCodeTag)
	}
	c.check("contact_person", req.ContactPerson, contactPersonTag)
	c.check("contact_email", req.ContactEmail, contactEmailTag)
	if req.ContactPhone != nil {
		c.check("contact_phone", *req.ContactPhone, contactPhoneTag)
	}
	c.check("fiscal_year", req.FiscalYear, fiscalYearTag)
	c.check("request_title", req.RequestTitle, requestTitleTag)
	c.check("request_description", req.RequestDescription, requestDescriptionTag)
	c.check("justification", req.Justification, justificationTag)
	c.check("expected_outcomes", req.ExpectedOutcomes, expectedOutcomesTag)
	if in.PriorityLevel != nil {
		priority := strings.TrimSpace(*in.PriorityLevel)
		if c.check("priority_level", priority, priorityTag) {
			req.PriorityLevel = model.PriorityLevel(priority)
		}
	}
	if in.TotalAmount != nil && c.nonNegative("total_amount", *in.TotalAmount) {
		req.TotalAmount = *in.TotalAmount
	}
	if in.TimelineStart != nil {
		if d, ok := c.date("timeline_start", *in.TimelineStart); ok {
			req.TimelineStart = &d
		}
	}
	if in.TimelineEnd != nil {
		if d, ok := c.date("timeline_end", *in.TimelineEnd); ok {
			req.TimelineEnd = &d
		}
	}

	if err := c.err(); err != nil {
		return nil, err
	}
	return req, nil
}

// UpdateRequest validates a partial update. Only present fields are
// checked; null is rejected on fields that cannot be cleared.
func (v *Validator) UpdateRequest(in dto.UpdateBudgetRequestInput) (*dto.BudgetRequestPatch, error) {
	c := v.newCollector()
	trim := func(o dto.Optional[string]) dto.Optional[string] { return dto.Map(o, strings.TrimSpace) }

	patch := &dto.BudgetRequestPatch{
		DepartmentName:     trim(in.DepartmentName),
		DepartmentCode:     trim(in.DepartmentCode),
		ContactPerson:      trim(in.ContactPerson),
		ContactEmail:       trim(in.ContactEmail),
		ContactPhone:       trim(in.ContactPhone),
		FiscalYear:         in.FiscalYear,
		RequestTitle:       trim(in.RequestTitle),
		RequestDescription: trim(in.RequestDescription),
		Justification:      trim(in.Justification),
		ExpectedOutcomes:   trim(in.ExpectedOutcomes),
		TotalAmount:        in.TotalAmount,
		ReviewedAt:         in.ReviewedAt,
		ReviewerNotes:      in.ReviewerNotes,
	}

	requiredString(c, "department_name", patch.DepartmentName, departmentNameTag)
	nullableString(c, "department_code", patch.DepartmentCode, departmentCodeTag)
	requiredString(c, "contact_person", patch.ContactPerson, contactPersonTag)
	requiredString(c, "contact_email", patch.ContactEmail, contactEmailTag)
	nullableString(c, "contact_phone", patch.ContactPhone, contactPhoneTag)
	if patch.FiscalYear.IsSet() && c.notNull("fiscal_year", patch.FiscalYear.IsNull()) {
		year, _ := patch.FiscalYear.Value()
		c.check("fiscal_year", year, fiscalYearTag)
	}
	requiredString(c, "request_title", patch.RequestTitle, requestTitleTag)
	requiredString(c, "request_description", patch.RequestDescription, requestDescriptionTag)
	requiredString(c, "justification", patch.Justification, justificationTag)
	requiredString(c, "expected_outcomes", patch.ExpectedOutcomes, expectedOutcomesTag)

	if in.PriorityLevel.IsSet() && c.notNull("priority_level", in.PriorityLevel.IsNull()) {
		priority, _ := trim(in.PriorityLevel).Value()
		if c.check("priority_level", priority, priorityTag) {
			patch.PriorityLevel = dto.Some(model.PriorityLevel(priority))
		}
	}
	if patch.TotalAmount.IsSet() && c.notNull("total_amount", patch.TotalAmount.IsNull()) {
		amount, _ := patch.TotalAmount.Value()
		c.nonNegative("total_amount", amount)
	}
	if in.Status.IsSet() && c.notNull("status", in.Status.IsNull()) {
		status, _ := trim(in.Status).Value()
		if c.check("status", status, statusTag) {
			patch.Status = dto.Some(model.RequestStatus(status))
		}
	}
	patch.TimelineStart = optionalDate(c, "timeline_start", in.TimelineStart)
	patch.TimelineEnd = optionalDate(c, "timeline_end", in.TimelineEnd)

	if err := c.err(); err != nil {
		return nil, err
	}
	return patch, nil
}

func requiredString(c *collector, field string, o dto.Optional[string], tag string) {
	if !o.IsSet() || !c.notNull(field, o.IsNull()) {
		return
	}
	value, _ := o.Value()
	c.check(field, value, tag)
}

func nullableString(c *collector, field string, o dto.Optional[string], tag string) {
	if value, ok := o.Value(); ok {
		c.check(field, value, tag)
	}
}

func optionalDate(c *collector, field string, o dto.Optional[string]) dto.Optional[datatypes.Date] {
	switch {
	case !o.IsSet():
		return dto.Optional[datatypes.Date]{}
	case o.IsNull():
		return dto.Null[datatypes.Date]()
	}
	value, _ := o.Value()
	d, ok := c.date(field, value)
	if !ok {
		return dto.Optional[datatypes.Date]{}
	}
	return dto.Some(d)
}

// RequestFilters validates list query parameters and applies defaults.
func (v *Validator) RequestFilters(in dto.RequestFiltersInput) (*dto.RequestFilters, error) {
	c := v.newCollector()
	filters := &dto.RequestFilters{Limit: dto.DefaultLimit, Offset: dto.DefaultOffset}

	if name := strings.TrimSpace(in.DepartmentName); name != "" {
		filters.DepartmentName = &name
	}
	if in.FiscalYear != "" {
		if year, ok := c.integer("fiscal_year", in.FiscalYear); ok && c.check("fiscal_year", year, fiscalYearTag) {
			filters.FiscalYear = &year
		}
	}
	if status := strings.TrimSpace(in.Status); status != "" && c.check("status", status, statusTag) {
		s := model.RequestStatus(status)
		filters.Status = &s
	}
	if priority := strings.TrimSpace(in.PriorityLevel); priority != "" && c.check("priority_level", priority, priorityTag) {
		p := model.PriorityLevel(priority)
		filters.PriorityLevel = &p
	}
	if in.Limit != "" {
		if limit, ok := c.integer("limit", in.Limit); ok && c.check("limit", limit, "gte=1,lte=100") {
			filters.Limit = limit
		}
	}
	if in.Offset != "" {
		if offset, ok := c.integer("offset", in.Offset); ok && c.check("offset", offset, "gte=0") {
			filters.Offset = offset
		}
	}

	if err := c.err(); err != nil {
		return nil, err
	}
	return filters, nil
}
