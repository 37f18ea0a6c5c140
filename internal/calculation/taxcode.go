package calculation

import (
	"strings"

	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/shopspring/decimal"
)

// prefixRule maps the first character of a tax code to its collection basis
type prefixRule struct {
	prefixes   string
	cumulative bool
	adjustment domain.Adjustment
}

// Evaluated in order; the first rule whose prefixes contain the code's first character wins.
var prefixRules = []prefixRule{
	{prefixes: "C", cumulative: true},
	{prefixes: "L", cumulative: false},
	{prefixes: "WM", cumulative: false, adjustment: domain.EmergencyTax},
	{prefixes: "K", cumulative: true, adjustment: domain.AdditionalTax},
}

var allowanceMultiplier = decimal.NewFromInt(10)

// ParseTaxCode parses an HMRC tax code. It never fails: anything it cannot
// read falls back to the standard allowance on a cumulative basis.
func ParseTaxCode(code string) domain.ParsedTaxCode {
	parsed := domain.ParsedTaxCode{
		PersonalAllowance: domain.DefaultPersonalAllowance,
		IsCumulative:      true,
		Adjustments:       []domain.Adjustment{},
	}

	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return parsed
	}

	if digits := longestDigitRun(code); digits != "" {
		if n, err := decimal.NewFromString(digits); err == nil {
			parsed.PersonalAllowance = n.Mul(allowanceMultiplier)
		}
	}

	first := code[:1]
	for _, rule := range prefixRules {
		if !strings.Contains(rule.prefixes, first) {
			continue
		}
		parsed.IsCumulative = rule.cumulative
		if rule.adjustment != "" {
			parsed.Adjustments = append(parsed.Adjustments, rule.adjustment)
		}
		break
	}

	return parsed
}

// longestDigitRun returns the longest contiguous run of ASCII digits, the first one on ties
func longestDigitRun(s string) string {
	best, start := "", -1
	for i := 0; i <= len(s); i++ {
		if i < len(s) && s[i] >= '0' && s[i] <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			if i-start > len(best) {
				best = s[start:i]
			}
			start = -1
		}
	}
	return best
}
