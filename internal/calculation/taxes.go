package calculation

import (
	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Income tax is worked out on a weekly basis: the annual personal allowance
//    and band thresholds are divided by 52. Band thresholds include the
//    personal allowance, so band widths are measured from zero taxable pay.
//
// 2. Emergency codes (W1/M1) charge all taxable pay at the basic rate.
//    K codes are recognised but have no further effect.
//
// 3. No year-to-date (cumulative) figures are kept; the cumulative flag is
//    reported only.
//
// 4. NI uses the employee Class 1 main and upper rates for the pay period.

// WeeksPerYear converts annual allowances and thresholds into weekly amounts
var WeeksPerYear = decimal.NewFromInt(52)

// RoundCurrency rounds half away from zero to pence
func RoundCurrency(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// WeeklyBands holds the weekly allowance and the widths of the tax bands
type WeeklyBands struct {
	PersonalAllowance decimal.Decimal
	BasicWidth        decimal.Decimal // taxable pay charged at the basic rate
	HigherWidth       decimal.Decimal // taxable pay charged at the higher rate
}

// IncomeTaxCalculator handles PAYE income tax calculations
type IncomeTaxCalculator struct {
	Rates domain.RateTable
}

// NewIncomeTaxCalculator creates a new income tax calculator for the given rates
func NewIncomeTaxCalculator(rates domain.RateTable) *IncomeTaxCalculator {
	return &IncomeTaxCalculator{Rates: rates}
}

// WeeklyBands converts an annual personal allowance and the rate table thresholds into weekly figures
func (itc *IncomeTaxCalculator) WeeklyBands(personalAllowance decimal.Decimal) WeeklyBands {
	weeklyPA := personalAllowance.Div(WeeksPerYear)
	weeklyBasic := personalAllowance.Add(itc.Rates.BasicRate.Threshold).Div(WeeksPerYear)
	weeklyHigher := personalAllowance.Add(itc.Rates.HigherRate.Threshold).Div(WeeksPerYear)

	return WeeklyBands{
		PersonalAllowance: weeklyPA,
		BasicWidth:        weeklyBasic.Sub(weeklyPA),
		HigherWidth:       weeklyHigher.Sub(weeklyBasic),
	}
}

// TaxableIncome returns weekly gross pay less the weekly personal allowance, floored at zero
func (itc *IncomeTaxCalculator) TaxableIncome(grossPay decimal.Decimal, code domain.ParsedTaxCode) decimal.Decimal {
	bands := itc.WeeklyBands(code.PersonalAllowance)
	return decimal.Max(decimal.Zero, grossPay.Sub(bands.PersonalAllowance))
}

// BandAmounts splits the tax on weekly taxable income across the basic, higher
// and additional bands. Amounts are unrounded.
func (itc *IncomeTaxCalculator) BandAmounts(taxableIncome decimal.Decimal, code domain.ParsedTaxCode) []domain.BandAmount {
	bands := itc.WeeklyBands(code.PersonalAllowance)
	basic, higher, additional := decimal.Zero, decimal.Zero, decimal.Zero

	switch {
	case taxableIncome.LessThanOrEqual(bands.BasicWidth):
		basic = taxableIncome
	case taxableIncome.LessThanOrEqual(bands.BasicWidth.Add(bands.HigherWidth)):
		basic = bands.BasicWidth
		higher = taxableIncome.Sub(bands.BasicWidth)
	default:
		basic = bands.BasicWidth
		higher = bands.HigherWidth
		additional = taxableIncome.Sub(bands.BasicWidth).Sub(bands.HigherWidth)
	}

	return []domain.BandAmount{
		{Name: "Basic Rate", Rate: itc.Rates.BasicRate.Rate, Amount: basic.Mul(itc.Rates.BasicRate.Rate)},
		{Name: "Higher Rate", Rate: itc.Rates.HigherRate.Rate, Amount: higher.Mul(itc.Rates.HigherRate.Rate)},
		{Name: "Additional Rate", Rate: itc.Rates.AdditionalRate.Rate, Amount: additional.Mul(itc.Rates.AdditionalRate.Rate)},
	}
}

// CalculateTax calculates weekly income tax for a gross weekly pay and tax code
func (itc *IncomeTaxCalculator) CalculateTax(grossPay decimal.Decimal, taxCode string) decimal.Decimal {
	code := ParseTaxCode(taxCode)
	taxable := itc.TaxableIncome(grossPay, code)

	if code.Has(domain.EmergencyTax) {
		return RoundCurrency(taxable.Mul(itc.Rates.BasicRate.Rate))
	}
	return RoundCurrency(sumBands(itc.BandAmounts(taxable, code)))
}

// CalculateTheoreticalTax applies the banding without any emergency override
func (itc *IncomeTaxCalculator) CalculateTheoreticalTax(grossPay decimal.Decimal, taxCode string) decimal.Decimal {
	code := ParseTaxCode(taxCode)
	taxable := itc.TaxableIncome(grossPay, code)
	return RoundCurrency(sumBands(itc.BandAmounts(taxable, code)))
}

func sumBands(bands []domain.BandAmount) decimal.Decimal {
	total := decimal.Zero
	for _, b := range bands {
		total = total.Add(b.Amount)
	}
	return total
}

// NICalculator handles employee National Insurance calculations
type NICalculator struct {
	Rates domain.RateTable
}

// NewNICalculator creates a new NI calculator for the given rates
func NewNICalculator(rates domain.RateTable) *NICalculator {
	return &NICalculator{Rates: rates}
}

// Breakdown splits NI for a period's gross pay into the main-rate and upper-rate portions (unrounded)
func (nic *NICalculator) Breakdown(grossPay decimal.Decimal, freq domain.Frequency) domain.NIBreakdown {
	rates := nic.Rates.NIFor(freq)
	taxablePay := decimal.Max(decimal.Zero, grossPay.Sub(rates.Threshold))

	standard, reduced := decimal.Zero, decimal.Zero
	if grossPay.LessThanOrEqual(rates.UpperThreshold) {
		standard = taxablePay.Mul(rates.Rate)
	} else {
		standard = rates.UpperThreshold.Sub(rates.Threshold).Mul(rates.Rate)
		reduced = grossPay.Sub(rates.UpperThreshold).Mul(rates.UpperRate)
	}

	return domain.NIBreakdown{
		Threshold:    rates.Threshold,
		TaxablePay:   taxablePay,
		StandardRate: domain.BandAmount{Name: "Standard Rate", Rate: rates.Rate, Amount: standard},
		ReducedRate:  domain.BandAmount{Name: "Reduced Rate", Rate: rates.UpperRate, Amount: reduced},
	}
}

// CalculateNI calculates NI for a period's gross pay. Unknown frequencies use the weekly rates.
func (nic *NICalculator) CalculateNI(grossPay decimal.Decimal, freq domain.Frequency) decimal.Decimal {
	b := nic.Breakdown(grossPay, freq)
	return RoundCurrency(b.StandardRate.Amount.Add(b.ReducedRate.Amount))
}
