// Package export renders budget requests as spreadsheets.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/wekeepgrowing/gov-budget-request-form/internal/domain/dto"
)

const (
	RequestSheet = "Request"
	ItemsSheet   = "Items"

	// ContentType is the MIME type of the generated workbook.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var itemHeaders = []string{"ID", "Category", "Description", "Unit", "Quantity", "Unit Cost", "Total Cost", "Justification"}

// WorkbookWriter writes a request as an .xlsx workbook with a metadata sheet
// and an itemized sheet ending in a total row.
type WorkbookWriter struct{}

// NewWorkbookWriter creates a WorkbookWriter.
func NewWorkbookWriter() *WorkbookWriter {
	return &WorkbookWriter{}
}

// Write renders detail to w.
func (WorkbookWriter) Write(w io.Writer, detail *dto.RequestDetail) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", RequestSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := writeRequestSheet(f, detail); err != nil {
		return err
	}

	if _, err := f.NewSheet(ItemsSheet); err != nil {
		return fmt.Errorf("failed to create items sheet: %w", err)
	}
	if err := writeItemsSheet(f, detail); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeRequestSheet(f *excelize.File, detail *dto.RequestDetail) error {
	r := detail.Request
	rows := [][]interface{}{
		{"Request ID", r.ID},
		{"Title", r.RequestTitle},
		{"Department", r.DepartmentName},
		{"Department Code", deref(r.DepartmentCode)},
		{"Contact Person", r.ContactPerson},
		{"Contact Email", r.ContactEmail},
		{"Contact Phone", deref(r.ContactPhone)},
		{"Fiscal Year", r.FiscalYear},
		{"Priority", string(r.PriorityLevel)},
		{"Status", string(r.Status)},
		{"Total Amount", amount(r.TotalAmount)},
		{"Description", r.RequestDescription},
		{"Justification", r.Justification},
		{"Expected Outcomes", r.ExpectedOutcomes},
		{"Submitted At", formatTime(r.SubmittedAt)},
		{"Reviewer Notes", deref(r.ReviewerNotes)},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(RequestSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write request row: %w", err)
		}
	}
	return f.SetColWidth(RequestSheet, "A", "A", 20)
}

func writeItemsSheet(f *excelize.File, detail *dto.RequestDetail) error {
	for i, header := range itemHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(ItemsSheet, cell, header); err != nil {
			return fmt.Errorf("failed to write items header: %w", err)
		}
	}

	for i, item := range detail.Items {
		row := []interface{}{
			item.ID,
			string(item.Category),
			item.ItemDescription,
			deref(item.Unit),
			item.EffectiveQuantity(),
			amount(item.UnitCost),
			amount(item.TotalCost),
			deref(item.Justification),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(ItemsSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write item row: %w", err)
		}
	}

	totalRow := len(detail.Items) + 2
	if err := f.SetCellValue(ItemsSheet, fmt.Sprintf("F%d", totalRow), "Total"); err != nil {
		return err
	}
	return f.SetCellValue(ItemsSheet, fmt.Sprintf("G%d", totalRow), amount(detail.Request.TotalAmount))
}

func amount(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
