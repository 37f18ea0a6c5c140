package calculation

import (
	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/shopspring/decimal"
)

// DeductionEngine orchestrates the tax, NI and pension calculations for a pay period.
// It holds no mutable state beyond its logger and is safe for concurrent use once configured.
type DeductionEngine struct {
	Rates   domain.RateTable
	TaxCalc *IncomeTaxCalculator
	NICalc  *NICalculator
	Logger  Logger
	Debug   bool // Log intermediate figures for each calculation
}

// NewDeductionEngine creates a deduction engine using the built-in 2024/25 rates
func NewDeductionEngine() *DeductionEngine {
	return NewDeductionEngineWithRates(domain.DefaultRateTable())
}

// NewDeductionEngineWithRates creates a deduction engine with a configurable rate table
func NewDeductionEngineWithRates(rates domain.RateTable) *DeductionEngine {
	return &DeductionEngine{
		Rates:   rates,
		TaxCalc: NewIncomeTaxCalculator(rates),
		NICalc:  NewNICalculator(rates),
		Logger:  NopLogger{},
	}
}

// SetLogger sets the logger for the engine. A nil logger disables logging.
func (de *DeductionEngine) SetLogger(l Logger) {
	if l == nil {
		de.Logger = NopLogger{}
		return
	}
	de.Logger = l
}

// ParseTaxCode parses a tax code string
func (de *DeductionEngine) ParseTaxCode(code string) domain.ParsedTaxCode {
	return ParseTaxCode(code)
}

// ComputeIncomeTax calculates income tax on a weekly gross pay
func (de *DeductionEngine) ComputeIncomeTax(grossPay decimal.Decimal, taxCode string) decimal.Decimal {
	return de.TaxCalc.CalculateTax(grossPay, taxCode)
}

// ComputeNI calculates NI on a period's gross pay. Unknown frequencies use the weekly rates.
func (de *DeductionEngine) ComputeNI(grossPay decimal.Decimal, freq domain.Frequency) decimal.Decimal {
	return de.NICalc.CalculateNI(grossPay, freq)
}

// ComputePension calculates a pension contribution as a percentage of gross pay
func (de *DeductionEngine) ComputePension(grossPay, percent decimal.Decimal) decimal.Decimal {
	return CalculatePension(grossPay, percent)
}

// TheoreticalIncomeTax calculates weekly income tax without the emergency-tax override
func (de *DeductionEngine) TheoreticalIncomeTax(grossPay decimal.Decimal, taxCode string) decimal.Decimal {
	return de.TaxCalc.CalculateTheoreticalTax(grossPay, taxCode)
}

// TheoreticalNI calculates NI with no adjustments applied
func (de *DeductionEngine) TheoreticalNI(grossPay decimal.Decimal, freq domain.Frequency) decimal.Decimal {
	return de.NICalc.CalculateNI(grossPay, freq)
}

// Compute calculates every deduction for the input and returns the rounded result.
// It returns a *domain.ValidationError when the input is invalid.
func (de *DeductionEngine) Compute(in domain.DeductionInput) (*domain.DeductionResult, error) {
	if err := in.Validate(); err != nil {
		de.Logger.Debugf("rejected input: %v", err)
		return nil, err
	}

	freq := in.Frequency
	if freq == "" {
		freq = domain.Weekly
	}
	taxCode := in.TaxCode
	if taxCode == "" {
		taxCode = domain.DefaultTaxCode
	}
	code := ParseTaxCode(taxCode)

	grossPay := RoundCurrency(in.GrossPay())
	if !grossPay.IsPositive() {
		err := &domain.ValidationError{Field: "gross pay", Reason: "must be greater than zero after rounding to the penny"}
		de.Logger.Debugf("rejected input: %v", err)
		return nil, err
	}
	incomeTax, ni := de.periodDeductions(grossPay, taxCode, freq, de.ComputeIncomeTax)
	theoreticalTax, theoreticalNI := de.periodDeductions(grossPay, taxCode, freq, de.TheoreticalIncomeTax)

	pension := de.ComputePension(grossPay, in.PensionPercent)
	childSupport := RoundCurrency(in.ChildSupport)
	other := RoundCurrency(in.OtherDeductions)

	total := incomeTax.Add(ni).Add(pension).Add(childSupport).Add(other)

	result := &domain.DeductionResult{
		GrossPay:                     grossPay,
		IncomeTax:                    incomeTax,
		NationalInsurance:            ni,
		Pension:                      pension,
		ChildSupport:                 childSupport,
		OtherDeductions:              other,
		TotalDeductions:              total,
		NetPay:                       grossPay.Sub(total),
		TheoreticalIncomeTax:         theoreticalTax,
		TheoreticalNationalInsurance: theoreticalNI,
		TaxCode:                      taxCode,
		Frequency:                    freq,
		PensionPercent:               in.PensionPercent,
		IsCumulative:                 code.IsCumulative,
		Adjustments:                  code.Adjustments,
	}

	if de.Debug {
		de.Logger.Debugf("gross=%s tax=%s ni=%s pension=%s total=%s net=%s (code %s, %s)",
			grossPay.StringFixed(2), incomeTax.StringFixed(2), ni.StringFixed(2), pension.StringFixed(2),
			total.StringFixed(2), result.NetPay.StringFixed(2), code.CanonicalString(), freq)
	}

	return result, nil
}

// periodDeductions applies the weekly tax and NI calculations to a pay period.
// Non-weekly pay is converted to a weekly equivalent and the results scaled back up,
// which approximates HMRC's period tables.
func (de *DeductionEngine) periodDeductions(grossPay decimal.Decimal, taxCode string, freq domain.Frequency,
	taxFn func(decimal.Decimal, string) decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	if freq == domain.Weekly {
		return taxFn(grossPay, taxCode), de.ComputeNI(grossPay, domain.Weekly)
	}

	weeks := freq.WeeksPerPeriod()
	weeklyGross := grossPay.Div(weeks)
	tax := RoundCurrency(taxFn(weeklyGross, taxCode).Mul(weeks))
	ni := RoundCurrency(de.ComputeNI(weeklyGross, domain.Weekly).Mul(weeks))
	return tax, ni
}

// Breakdown explains the tax and NI figures for a period's gross pay.
// Non-weekly amounts are the weekly-equivalent banding scaled up to the period,
// so the tax bands add up to the theoretical tax to within a penny per week.
func (de *DeductionEngine) Breakdown(grossPay decimal.Decimal, taxCode string, freq domain.Frequency) *domain.Breakdown {
	if freq == "" {
		freq = domain.Weekly
	}
	weeks := freq.WeeksPerPeriod()
	weeklyGross := grossPay.Div(weeks)
	code := ParseTaxCode(taxCode)
	bands := de.TaxCalc.WeeklyBands(code.PersonalAllowance)
	taxable := de.TaxCalc.TaxableIncome(weeklyGross, code)

	taxBands := de.TaxCalc.BandAmounts(taxable, code)
	ni := de.NICalc.Breakdown(weeklyGross, domain.Weekly)
	if freq != domain.Weekly {
		for i := range taxBands {
			taxBands[i].Amount = taxBands[i].Amount.Mul(weeks)
		}
		ni.Threshold = ni.Threshold.Mul(weeks)
		ni.TaxablePay = ni.TaxablePay.Mul(weeks)
		ni.StandardRate.Amount = ni.StandardRate.Amount.Mul(weeks)
		ni.ReducedRate.Amount = ni.ReducedRate.Amount.Mul(weeks)
	}

	return &domain.Breakdown{
		Frequency:         freq,
		PersonalAllowance: RoundCurrency(bands.PersonalAllowance.Mul(weeks)),
		TaxableIncome:     RoundCurrency(taxable.Mul(weeks)),
		TaxBands:          taxBands,
		NI:                ni,
		IsCumulative:      code.IsCumulative,
		Adjustments:       code.Adjustments,
	}
}

// Payslip computes the result and breakdown for an input
func (de *DeductionEngine) Payslip(in domain.DeductionInput) (*domain.Payslip, error) {
	result, err := de.Compute(in)
	if err != nil {
		return nil, err
	}
	return &domain.Payslip{
		Input:     in,
		Result:    result,
		Breakdown: de.Breakdown(result.GrossPay, result.TaxCode, result.Frequency),
	}, nil
}
