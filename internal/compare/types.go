package compare

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/rgehrsitz/paygo/internal/output"
	"github.com/shopspring/decimal"
)

// ComparisonRow is one saved week recalculated with the current rates
type ComparisonRow struct {
	WeekID      string          `json:"weekId"`
	WeekStart   time.Time       `json:"weekStart"`
	Payday      time.Time       `json:"payday"`
	TaxCode     string          `json:"taxCode"`
	HoursWorked decimal.Decimal `json:"hoursWorked"`

	GrossPay          decimal.Decimal `json:"grossPay"`
	IncomeTax         decimal.Decimal `json:"incomeTax"`
	NationalInsurance decimal.Decimal `json:"nationalInsurance"`
	Pension           decimal.Decimal `json:"pension"`
	Other             decimal.Decimal `json:"other"` // child support plus other deductions
	TotalDeductions   decimal.Decimal `json:"totalDeductions"`
	NetPay            decimal.Decimal `json:"netPay"`

	// Comparison to the figures stored when the week was saved
	SavedNetPay      decimal.Decimal `json:"savedNetPay"`
	NetDiffFromSaved decimal.Decimal `json:"netDiffFromSaved"`
}

// Totals sums the comparison rows
type Totals struct {
	Weeks             int             `json:"weeks"`
	HoursWorked       decimal.Decimal `json:"hoursWorked"`
	GrossPay          decimal.Decimal `json:"grossPay"`
	IncomeTax         decimal.Decimal `json:"incomeTax"`
	NationalInsurance decimal.Decimal `json:"nationalInsurance"`
	Pension           decimal.Decimal `json:"pension"`
	Other             decimal.Decimal `json:"other"`
	TotalDeductions   decimal.Decimal `json:"totalDeductions"`
	NetPay            decimal.Decimal `json:"netPay"`
	AverageNetPay     decimal.Decimal `json:"averageNetPay"`
}

// ComparisonSet is the full comparison table, ordered by payday with the latest first
type ComparisonSet struct {
	TaxYear string          `json:"taxYear"`
	Rows    []ComparisonRow `json:"rows"`
	Totals  Totals          `json:"totals"`
	Skipped int             `json:"skipped"` // saved weeks that could not be recalculated
	Notes   []string        `json:"notes"`
}

// Add accumulates a row into the totals
func (t *Totals) Add(row ComparisonRow) {
	t.Weeks++
	t.HoursWorked = t.HoursWorked.Add(row.HoursWorked)
	t.GrossPay = t.GrossPay.Add(row.GrossPay)
	t.IncomeTax = t.IncomeTax.Add(row.IncomeTax)
	t.NationalInsurance = t.NationalInsurance.Add(row.NationalInsurance)
	t.Pension = t.Pension.Add(row.Pension)
	t.Other = t.Other.Add(row.Other)
	t.TotalDeductions = t.TotalDeductions.Add(row.TotalDeductions)
	t.NetPay = t.NetPay.Add(row.NetPay)
	t.AverageNetPay = t.NetPay.Div(decimal.NewFromInt(int64(t.Weeks))).Round(2)
}

// GenerateNotes summarises the comparison: best and worst weeks and any weeks
// whose saved figures no longer match the current rates
func GenerateNotes(set *ComparisonSet) []string {
	notes := []string{}
	if len(set.Rows) == 0 {
		return notes
	}

	best, worst := set.Rows[0], set.Rows[0]
	changed := 0
	for _, row := range set.Rows {
		if row.NetPay.GreaterThan(best.NetPay) {
			best = row
		}
		if row.NetPay.LessThan(worst.NetPay) {
			worst = row
		}
		if !row.NetDiffFromSaved.IsZero() {
			changed++
		}
	}

	if len(set.Rows) > 1 {
		notes = append(notes,
			fmt.Sprintf("Highest net pay: %s paid %s", output.FormatCurrency(best.NetPay), best.Payday.Format(domain.DateLayout)),
			fmt.Sprintf("Lowest net pay: %s paid %s", output.FormatCurrency(worst.NetPay), worst.Payday.Format(domain.DateLayout)))
	}
	if changed > 0 {
		notes = append(notes, fmt.Sprintf("%d week(s) differ from their saved net pay under the %s rates", changed, set.TaxYear))
	}
	if set.Skipped > 0 {
		notes = append(notes, fmt.Sprintf("%d saved week(s) could not be recalculated and were left out", set.Skipped))
	}
	return notes
}
