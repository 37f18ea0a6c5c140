package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/paygo/internal/domain"
)

// ConsoleFormatter renders a payslip as a plain-text breakdown
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(slip *domain.Payslip) ([]byte, error) {
	if slip == nil || slip.Result == nil {
		return nil, fmt.Errorf("nothing to format")
	}
	r := slip.Result
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "PAY BREAKDOWN")
	fmt.Fprintln(&buf, strings.Repeat("=", 44))
	fmt.Fprintf(&buf, "Tax code: %s    Frequency: %s\n", r.TaxCode, r.Frequency)
	fmt.Fprintln(&buf)
	writeLine(&buf, "Gross Pay", FormatCurrency(r.GrossPay))

	if b := slip.Breakdown; b != nil {
		writeLine(&buf, "  Personal Allowance", FormatCurrency(b.PersonalAllowance))
		writeLine(&buf, "  Taxable Income", FormatCurrency(b.TaxableIncome))
	}

	basis := "Non-cumulative"
	if r.IsCumulative {
		basis = "Cumulative"
	}
	writeLine(&buf, fmt.Sprintf("Income Tax (%s)", basis), FormatCurrency(r.IncomeTax))
	if b := slip.Breakdown; b != nil {
		for _, band := range b.TaxBands {
			if band.Amount.IsZero() {
				continue
			}
			writeLine(&buf, fmt.Sprintf("  %s (%s)", band.Name, FormatRate(band.Rate)), FormatCurrency(band.Amount.Round(2)))
		}
	}

	writeLine(&buf, "National Insurance", FormatCurrency(r.NationalInsurance))
	if b := slip.Breakdown; b != nil {
		for _, band := range []domain.BandAmount{b.NI.StandardRate, b.NI.ReducedRate} {
			if band.Amount.IsZero() {
				continue
			}
			writeLine(&buf, fmt.Sprintf("  %s (%s)", band.Name, FormatRate(band.Rate)), FormatCurrency(band.Amount.Round(2)))
		}
	}

	writeLine(&buf, fmt.Sprintf("Pension (%s%%)", r.PensionPercent.String()), FormatCurrency(r.Pension))
	if !r.ChildSupport.IsZero() {
		writeLine(&buf, "Child Support", FormatCurrency(r.ChildSupport))
	}
	if !r.OtherDeductions.IsZero() {
		writeLine(&buf, "Other Deductions", FormatCurrency(r.OtherDeductions))
	}

	fmt.Fprintln(&buf, strings.Repeat("-", 44))
	writeLine(&buf, "Total Deductions", FormatCurrency(r.TotalDeductions))
	writeLine(&buf, "NET PAY", FormatCurrency(r.NetPay))

	if len(r.Adjustments) > 0 {
		fmt.Fprintln(&buf)
		for _, adj := range r.Adjustments {
			fmt.Fprintf(&buf, "Note: %s\n", AdjustmentNote(adj))
		}
		if !r.TheoreticalIncomeTax.Equal(r.IncomeTax) {
			fmt.Fprintf(&buf, "Income tax without adjustment would be %s\n", FormatCurrency(r.TheoreticalIncomeTax))
		}
	}

	return buf.Bytes(), nil
}

func writeLine(buf *bytes.Buffer, label, value string) {
	fmt.Fprintf(buf, "%-30s %13s\n", label, value)
}

// AdjustmentNote describes a tax code adjustment for display
func AdjustmentNote(adj domain.Adjustment) string {
	switch adj {
	case domain.EmergencyTax:
		return "emergency tax code, all taxable pay charged at the basic rate"
	case domain.AdditionalTax:
		return "K code recorded, no additional tax is applied"
	default:
		return string(adj)
	}
}
