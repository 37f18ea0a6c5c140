package domain

import (
	"github.com/shopspring/decimal"
)

// DeductionInput holds the values entered for one pay period.
// Gross pay is PayRate x HoursWorked.
type DeductionInput struct {
	PayRate         decimal.Decimal `yaml:"pay_rate" json:"pay_rate"`
	HoursWorked     decimal.Decimal `yaml:"hours_worked" json:"hours_worked"`
	TaxCode         string          `yaml:"tax_code" json:"tax_code"`
	Frequency       Frequency       `yaml:"frequency" json:"frequency"`
	PensionPercent  decimal.Decimal `yaml:"pension_percent" json:"pension_percent"`
	ChildSupport    decimal.Decimal `yaml:"child_support" json:"child_support"`
	OtherDeductions decimal.Decimal `yaml:"other_deductions" json:"other_deductions"`
}

// DefaultTaxCode is used when no tax code has been entered
const DefaultTaxCode = "C1257L"

// DefaultPensionPercent is the pre-filled pension contribution
var DefaultPensionPercent = decimal.RequireFromString("3.9")

// GrossPay returns PayRate x HoursWorked
func (in DeductionInput) GrossPay() decimal.Decimal {
	return in.PayRate.Mul(in.HoursWorked)
}

// Validate checks the input, returning a *ValidationError for the first problem found
func (in DeductionInput) Validate() error {
	if in.PayRate.LessThanOrEqual(decimal.Zero) {
		return &ValidationError{Field: "pay rate", Reason: "must be greater than zero"}
	}
	if in.HoursWorked.LessThanOrEqual(decimal.Zero) {
		return &ValidationError{Field: "hours worked", Reason: "must be greater than zero"}
	}
	if in.PensionPercent.IsNegative() {
		return &ValidationError{Field: "pension percent", Reason: "cannot be negative"}
	}
	if in.ChildSupport.IsNegative() {
		return &ValidationError{Field: "child support", Reason: "cannot be negative"}
	}
	if in.OtherDeductions.IsNegative() {
		return &ValidationError{Field: "other deductions", Reason: "cannot be negative"}
	}
	if in.Frequency != "" && !in.Frequency.Valid() {
		return &ValidationError{Field: "frequency", Reason: "unknown pay frequency " + string(in.Frequency)}
	}
	return nil
}

// DeductionResult is the outcome of a single deduction calculation. All
// amounts are rounded to pence, and
//
//	TotalDeductions = IncomeTax + NationalInsurance + Pension + ChildSupport + OtherDeductions
//	NetPay          = GrossPay - TotalDeductions
//
// hold exactly.
type DeductionResult struct {
	GrossPay          decimal.Decimal `json:"gross_pay" yaml:"gross_pay"`
	IncomeTax         decimal.Decimal `json:"income_tax" yaml:"income_tax"`
	NationalInsurance decimal.Decimal `json:"national_insurance" yaml:"national_insurance"`
	Pension           decimal.Decimal `json:"pension" yaml:"pension"`
	ChildSupport      decimal.Decimal `json:"child_support" yaml:"child_support"`
	OtherDeductions   decimal.Decimal `json:"other_deductions" yaml:"other_deductions"`
	TotalDeductions   decimal.Decimal `json:"total_deductions" yaml:"total_deductions"`
	NetPay            decimal.Decimal `json:"net_pay" yaml:"net_pay"`

	// Same banding without the emergency-tax override, for side-by-side display
	TheoreticalIncomeTax         decimal.Decimal `json:"theoretical_income_tax" yaml:"theoretical_income_tax"`
	TheoreticalNationalInsurance decimal.Decimal `json:"theoretical_national_insurance" yaml:"theoretical_national_insurance"`

	TaxCode        string          `json:"tax_code" yaml:"tax_code"`
	Frequency      Frequency       `json:"frequency" yaml:"frequency"`
	PensionPercent decimal.Decimal `json:"pension_percent" yaml:"pension_percent"`
	IsCumulative   bool            `json:"is_cumulative" yaml:"is_cumulative"`
	Adjustments    []Adjustment    `json:"adjustments,omitempty" yaml:"adjustments,omitempty"`
}

// BandAmount is the tax charged within one band
type BandAmount struct {
	Name   string          `json:"name" yaml:"name"`
	Rate   decimal.Decimal `json:"rate" yaml:"rate"`
	Amount decimal.Decimal `json:"amount" yaml:"amount"`
}

// NIBreakdown splits NI into the main and upper-rate portions
type NIBreakdown struct {
	Threshold    decimal.Decimal `json:"threshold" yaml:"threshold"`
	TaxablePay   decimal.Decimal `json:"taxable_pay" yaml:"taxable_pay"`
	StandardRate BandAmount      `json:"standard_rate" yaml:"standard_rate"`
	ReducedRate  BandAmount      `json:"reduced_rate" yaml:"reduced_rate"`
}

// Breakdown explains how the tax and NI figures were reached.
// Every amount is for the pay period named by Frequency.
// Band amounts are unrounded and follow the banding without the emergency override.
type Breakdown struct {
	Frequency         Frequency       `json:"frequency" yaml:"frequency"`
	PersonalAllowance decimal.Decimal `json:"personal_allowance" yaml:"personal_allowance"`
	TaxableIncome     decimal.Decimal `json:"taxable_income" yaml:"taxable_income"`
	TaxBands          []BandAmount    `json:"tax_bands" yaml:"tax_bands"`
	NI                NIBreakdown     `json:"national_insurance" yaml:"national_insurance"`
	IsCumulative      bool            `json:"is_cumulative" yaml:"is_cumulative"`
	Adjustments       []Adjustment    `json:"adjustments,omitempty" yaml:"adjustments,omitempty"`
}

// Payslip pairs a result with its breakdown for rendering
type Payslip struct {
	Input     DeductionInput   `json:"input" yaml:"input"`
	Result    *DeductionResult `json:"result" yaml:"result"`
	Breakdown *Breakdown       `json:"breakdown" yaml:"breakdown"`
}
