package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/rgehrsitz/paygo/internal/output"
	"github.com/shopspring/decimal"
)

const tableWidth = 108

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table of saved weeks
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("WEEKLY PAY COMPARISON\n")
	sb.WriteString(strings.Repeat("=", tableWidth) + "\n")
	sb.WriteString(fmt.Sprintf("Rates: %s\n", compSet.TaxYear))
	sb.WriteString("\n")

	if len(compSet.Rows) == 0 {
		sb.WriteString("No saved weeks.\n")
		return sb.String()
	}

	sb.WriteString(tf.line("Payday", "Hours", "Gross", "Tax", "NI", "Pension", "Other", "Deductions", "Net"))
	sb.WriteString(strings.Repeat("-", tableWidth) + "\n")

	for _, row := range compSet.Rows {
		sb.WriteString(tf.line(
			row.Payday.Format(domain.DateLayout),
			row.HoursWorked.String(),
			output.FormatCurrency(row.GrossPay),
			output.FormatCurrency(row.IncomeTax),
			output.FormatCurrency(row.NationalInsurance),
			output.FormatCurrency(row.Pension),
			output.FormatCurrency(row.Other),
			output.FormatCurrency(row.TotalDeductions),
			output.FormatCurrency(row.NetPay)+tf.deltaMarker(row.NetDiffFromSaved),
		))
	}

	t := compSet.Totals
	sb.WriteString(strings.Repeat("=", tableWidth) + "\n")
	sb.WriteString(tf.line(
		fmt.Sprintf("Total (%d)", t.Weeks),
		t.HoursWorked.String(),
		output.FormatCurrency(t.GrossPay),
		output.FormatCurrency(t.IncomeTax),
		output.FormatCurrency(t.NationalInsurance),
		output.FormatCurrency(t.Pension),
		output.FormatCurrency(t.Other),
		output.FormatCurrency(t.TotalDeductions),
		output.FormatCurrency(t.NetPay),
	))
	sb.WriteString(fmt.Sprintf("Average net pay: %s\n", output.FormatCurrency(t.AverageNetPay)))

	if len(compSet.Notes) > 0 {
		sb.WriteString("\nNOTES\n")
		sb.WriteString(strings.Repeat("-", tableWidth) + "\n")
		for _, note := range compSet.Notes {
			sb.WriteString(fmt.Sprintf("• %s\n", note))
		}
	}

	return sb.String()
}

func (tf *TableFormatter) line(payday, hours string, amounts ...string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-12s %7s", payday, hours))
	for _, a := range amounts {
		sb.WriteString(fmt.Sprintf(" %11s", a))
	}
	sb.WriteString("\n")
	return sb.String()
}

// deltaMarker flags rows whose recalculated net pay differs from the saved figure
func (tf *TableFormatter) deltaMarker(delta decimal.Decimal) string {
	if delta.IsZero() {
		return ""
	}
	return "*"
}
