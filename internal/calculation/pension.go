package calculation

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CalculatePension returns percent% of gross pay, rounded to pence. A zero or negative percentage means no contribution.
func CalculatePension(grossPay, percent decimal.Decimal) decimal.Decimal {
	if percent.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return RoundCurrency(grossPay.Mul(percent).Div(hundred))
}
