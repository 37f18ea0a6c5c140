package compare

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/rgehrsitz/paygo/internal/domain"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results. The last row holds the totals.
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Payday",
		"Week Start",
		"Tax Code",
		"Hours",
		"Gross Pay",
		"Income Tax",
		"National Insurance",
		"Pension",
		"Other",
		"Total Deductions",
		"Net Pay",
		"Saved Net Pay",
		"Net Diff",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for _, row := range compSet.Rows {
		if err := writer.Write(cf.formatRow(row)); err != nil {
			return "", err
		}
	}

	t := compSet.Totals
	totals := []string{
		"Total",
		strconv.Itoa(t.Weeks) + " weeks",
		"",
		t.HoursWorked.String(),
		t.GrossPay.StringFixed(2),
		t.IncomeTax.StringFixed(2),
		t.NationalInsurance.StringFixed(2),
		t.Pension.StringFixed(2),
		t.Other.StringFixed(2),
		t.TotalDeductions.StringFixed(2),
		t.NetPay.StringFixed(2),
		"",
		"",
	}
	if err := writer.Write(totals); err != nil {
		return "", err
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison row as a CSV record
func (cf *CSVFormatter) formatRow(row ComparisonRow) []string {
	return []string{
		row.Payday.Format(domain.DateLayout),
		row.WeekStart.Format(domain.DateLayout),
		row.TaxCode,
		row.HoursWorked.String(),
		row.GrossPay.StringFixed(2),
		row.IncomeTax.StringFixed(2),
		row.NationalInsurance.StringFixed(2),
		row.Pension.StringFixed(2),
		row.Other.StringFixed(2),
		row.TotalDeductions.StringFixed(2),
		row.NetPay.StringFixed(2),
		row.SavedNetPay.StringFixed(2),
		row.NetDiffFromSaved.StringFixed(2),
	}
}
