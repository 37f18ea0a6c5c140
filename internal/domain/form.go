package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Input converts the form values into a weekly calculation input.
// Blank numeric fields count as zero and a blank tax code becomes DefaultTaxCode.
func (f FormState) Input() (DeductionInput, error) {
	var in DeductionInput
	fields := []struct {
		name  string
		raw   string
		value *decimal.Decimal
	}{
		{"pay rate", f.PayRate, &in.PayRate},
		{"hours worked", f.HoursWorked, &in.HoursWorked},
		{"pension percent", f.PensionPercent, &in.PensionPercent},
		{"child support", f.ChildSupport, &in.ChildSupport},
		{"other deductions", f.OtherDeductions, &in.OtherDeductions},
	}
	for _, fld := range fields {
		v, err := parseAmount(fld.name, fld.raw)
		if err != nil {
			return DeductionInput{}, err
		}
		*fld.value = v
	}
	in.TaxCode = strings.TrimSpace(f.TaxCode)
	if in.TaxCode == "" {
		in.TaxCode = DefaultTaxCode
	}
	in.Frequency = Weekly
	return in, nil
}

// FormStateFromRecord fills the form with a saved week
func FormStateFromRecord(w WeekRecord) FormState {
	return FormState{
		PayRate:         w.PayRate.String(),
		HoursWorked:     w.HoursWorked.String(),
		TaxCode:         w.TaxCode,
		PensionPercent:  w.PensionPercent.String(),
		ChildSupport:    w.ChildSupport.String(),
		OtherDeductions: w.OtherDeductions.String(),
		WeekStartDate:   w.WeekStart.Format(DateLayout),
	}
}

func parseAmount(field, raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "£"))
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, &ValidationError{Field: field, Reason: "not a number: " + raw}
	}
	return d, nil
}
