package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/wekeepgrowing/gov-budget-request-form/internal/domain/dto"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/usecase"
)

// fixtureFile is the seed file layout. Amounts are strings so YAML never
// parses them as floats.
type fixtureFile struct {
	Requests []requestFixture `yaml:"requests"`
}

type requestFixture struct {
	DepartmentName     string        `yaml:"department_name"`
	DepartmentCode     *string       `yaml:"department_code"`
	ContactPerson      string        `yaml:"contact_person"`
	ContactEmail       string        `yaml:"contact_email"`
	ContactPhone       *string       `yaml:"contact_phone"`
	FiscalYear         int           `yaml:"fiscal_year"`
	RequestTitle       string        `yaml:"request_title"`
	RequestDescription string        `yaml:"request_description"`
	Justification      string        `yaml:"justification"`
	ExpectedOutcomes   string        `yaml:"expected_outcomes"`
	PriorityLevel      *string       `yaml:"priority_level"`
	TimelineStart      *string       `yaml:"timeline_start"`
	TimelineEnd        *string       `yaml:"timeline_end"`
	Submit             bool          `yaml:"submit"`
	Items              []itemFixture `yaml:"items"`
}

type itemFixture struct {
	Category        string  `yaml:"category"`
	ItemDescription string  `yaml:"item_description"`
	Unit            *string `yaml:"unit"`
	Quantity        *int    `yaml:"quantity"`
	UnitCost        string  `yaml:"unit_cost"`
	TotalCost       *string `yaml:"total_cost"`
	Justification   *string `yaml:"justification"`
}

func runSeed(cmd *cobra.Command, args []string) error {
	f, err := os.Open(seedFile)
	if err != nil {
		return fmt.Errorf("failed to open fixture file: %w", err)
	}
	defer f.Close()

	_, err = seed(cmd.Context(), current.usecases, f, cmd.OutOrStdout())
	return err
}

// seed creates every fixture through the usecases so totals stay derived
// from items. It stops at the first failure and returns how many requests
// were created.
func seed(ctx context.Context, u *usecase.Usecases, r io.Reader, w io.Writer) (int, error) {
	var fixtures fixtureFile
	if err := yaml.NewDecoder(r).Decode(&fixtures); err != nil {
		return 0, fmt.Errorf("failed to parse fixture file: %w", err)
	}

	for i, rf := range fixtures.Requests {
		req, err := u.Requests.Create(ctx, dto.CreateBudgetRequestInput{
			DepartmentName:     rf.DepartmentName,
			DepartmentCode:     rf.DepartmentCode,
			ContactPerson:      rf.ContactPerson,
			ContactEmail:       rf.ContactEmail,
			ContactPhone:       rf.ContactPhone,
			FiscalYear:         rf.FiscalYear,
			RequestTitle:       rf.RequestTitle,
			RequestDescription: rf.RequestDescription,
			Justification:      rf.Justification,
			ExpectedOutcomes:   rf.ExpectedOutcomes,
			PriorityLevel:      rf.PriorityLevel,
			TimelineStart:      rf.TimelineStart,
			TimelineEnd:        rf.TimelineEnd,
		})
		if err != nil {
			return i, fmt.Errorf("request %d (%s): %w", i+1, rf.RequestTitle, err)
		}

		for j, item := range rf.Items {
			in, err := item.input()
			if err != nil {
				return i, fmt.Errorf("request %d item %d: %w", i+1, j+1, err)
			}
			if _, err := u.Items.Create(ctx, req.ID, in); err != nil {
				return i, fmt.Errorf("request %d item %d: %w", i+1, j+1, err)
			}
		}

		if rf.Submit {
			if req, err = u.Requests.Submit(ctx, req.ID); err != nil {
				return i, fmt.Errorf("request %d submit: %w", i+1, err)
			}
		} else if req, err = u.Requests.Get(ctx, req.ID); err != nil {
			return i, err
		}

		fmt.Fprintf(w, "Seeded request %d %q: %d items, total %s, %s\n",
			req.ID, req.RequestTitle, len(rf.Items), req.TotalAmount.StringFixed(2), req.Status)
	}
	return len(fixtures.Requests), nil
}

func (f itemFixture) input() (dto.CreateBudgetItemInput, error) {
	in := dto.CreateBudgetItemInput{
		Category:        f.Category,
		ItemDescription: f.ItemDescription,
		Unit:            f.Unit,
		Quantity:        f.Quantity,
		Justification:   f.Justification,
	}

	unitCost, err := decimal.NewFromString(f.UnitCost)
	if err != nil {
		return in, fmt.Errorf("invalid unit_cost %q: %w", f.UnitCost, err)
	}
	in.UnitCost = &unitCost

	if f.TotalCost != nil {
		totalCost, err := decimal.NewFromString(*f.TotalCost)
		if err != nil {
			return in, fmt.Errorf("invalid total_cost %q: %w", *f.TotalCost, err)
		}
		in.TotalCost = &totalCost
	}
	return in, nil
}
