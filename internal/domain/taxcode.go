package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Adjustment is a collection adjustment signalled by a tax code prefix
type Adjustment string

const (
	// EmergencyTax is set by W1/M1 codes: taxable pay is charged at the basic rate only
	EmergencyTax Adjustment = "emergency_tax"
	// AdditionalTax is set by K codes. It is informational and does not change the arithmetic.
	AdditionalTax Adjustment = "additional_tax"
)

// ParsedTaxCode is the result of parsing an HMRC tax code
type ParsedTaxCode struct {
	PersonalAllowance decimal.Decimal `json:"personal_allowance" yaml:"personal_allowance"`
	IsCumulative      bool            `json:"is_cumulative" yaml:"is_cumulative"`
	Adjustments       []Adjustment    `json:"adjustments" yaml:"adjustments"`
}

// Has reports whether the code carries the given adjustment
func (p ParsedTaxCode) Has(adj Adjustment) bool {
	for _, a := range p.Adjustments {
		if a == adj {
			return true
		}
	}
	return false
}

// Basis returns "Cumulative" or "Non-cumulative"
func (p ParsedTaxCode) Basis() string {
	if p.IsCumulative {
		return "Cumulative"
	}
	return "Non-cumulative"
}

// CanonicalString renders the code as <prefix><allowance/10>. Parsing the
// result yields the same personal allowance and cumulative flag.
func (p ParsedTaxCode) CanonicalString() string {
	prefix := "C"
	switch {
	case p.Has(EmergencyTax):
		prefix = "W"
	case p.Has(AdditionalTax):
		prefix = "K"
	case !p.IsCumulative:
		prefix = "L"
	}
	return prefix + p.PersonalAllowance.Div(decimal.NewFromInt(10)).Truncate(0).String()
}

// AdjustmentNames returns the adjustments as a comma separated list
func (p ParsedTaxCode) AdjustmentNames() string {
	names := make([]string, 0, len(p.Adjustments))
	for _, a := range p.Adjustments {
		names = append(names, string(a))
	}
	return strings.Join(names, ", ")
}
