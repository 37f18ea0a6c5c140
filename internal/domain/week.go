package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the on-disk and command-line date format
const DateLayout = "2006-01-02"

const (
	daysToWeekEnd = 6
	daysToPayday  = 11 // paid in arrears, Friday of the following week
)

// WeekRecord is one saved week of pay
type WeekRecord struct {
	ID        string    `json:"id"`
	WeekStart time.Time `json:"week_start"`
	WeekEnd   time.Time `json:"week_end"`
	Payday    time.Time `json:"payday"`

	PayRate         decimal.Decimal `json:"pay_rate"`
	HoursWorked     decimal.Decimal `json:"hours_worked"`
	TaxCode         string          `json:"tax_code"`
	PensionPercent  decimal.Decimal `json:"pension_percent"`
	ChildSupport    decimal.Decimal `json:"child_support"`
	OtherDeductions decimal.Decimal `json:"other_deductions"`

	GrossPay          decimal.Decimal `json:"gross_pay"`
	IncomeTax         decimal.Decimal `json:"income_tax"`
	NationalInsurance decimal.Decimal `json:"national_insurance"`
	Pension           decimal.Decimal `json:"pension"`
	TotalDeductions   decimal.Decimal `json:"total_deductions"`
	NetPay            decimal.Decimal `json:"net_pay"`

	Timestamp time.Time `json:"timestamp"`
}

// WeekDates returns the last day of the week and the payday for a week starting on start
func WeekDates(start time.Time) (weekEnd, payday time.Time) {
	start = DateOnly(start)
	return start.AddDate(0, 0, daysToWeekEnd), start.AddDate(0, 0, daysToPayday)
}

// DateOnly truncates t to midnight UTC on the same calendar day
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MondayOf returns the Monday of the week containing t
func MondayOf(t time.Time) time.Time {
	day := DateOnly(t)
	offset := (int(day.Weekday()) + 6) % 7 // Sunday counts as the end of the week
	return day.AddDate(0, 0, -offset)
}

// ParseDate parses a YYYY-MM-DD date
func ParseDate(field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, &ValidationError{Field: field, Reason: "a date is required"}
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, &ValidationError{Field: field, Reason: "expected a date in YYYY-MM-DD form"}
	}
	return t, nil
}

// NewWeekRecord builds a record for the week starting on weekStart from a calculation
func NewWeekRecord(weekStart time.Time, in DeductionInput, res *DeductionResult, now time.Time) (WeekRecord, error) {
	if weekStart.IsZero() {
		return WeekRecord{}, &ValidationError{Field: "week start", Reason: "select a week start date before saving"}
	}
	if res == nil || res.GrossPay.LessThanOrEqual(decimal.Zero) {
		return WeekRecord{}, &ValidationError{Field: "gross pay", Reason: "enter a valid pay rate and hours worked before saving"}
	}
	start := DateOnly(weekStart)
	end, payday := WeekDates(start)
	return WeekRecord{
		ID:                uuid.NewString(),
		WeekStart:         start,
		WeekEnd:           end,
		Payday:            payday,
		PayRate:           in.PayRate,
		HoursWorked:       in.HoursWorked,
		TaxCode:           res.TaxCode,
		PensionPercent:    in.PensionPercent,
		ChildSupport:      res.ChildSupport,
		OtherDeductions:   res.OtherDeductions,
		GrossPay:          res.GrossPay,
		IncomeTax:         res.IncomeTax,
		NationalInsurance: res.NationalInsurance,
		Pension:           res.Pension,
		TotalDeductions:   res.TotalDeductions,
		NetPay:            res.NetPay,
		Timestamp:         now.UTC(),
	}, nil
}

// Input reconstructs the weekly calculation input stored on the record
func (w WeekRecord) Input() DeductionInput {
	return DeductionInput{
		PayRate:         w.PayRate,
		HoursWorked:     w.HoursWorked,
		TaxCode:         w.TaxCode,
		Frequency:       Weekly,
		PensionPercent:  w.PensionPercent,
		ChildSupport:    w.ChildSupport,
		OtherDeductions: w.OtherDeductions,
	}
}

// SamePayday reports whether two records are paid on the same day
func (w WeekRecord) SamePayday(other WeekRecord) bool {
	return DateOnly(w.Payday).Equal(DateOnly(other.Payday))
}

// FormState is the last set of values entered in the calculator form.
// Values are kept as entered so a half-typed form survives a reload.
type FormState struct {
	PayRate         string `json:"pay_rate"`
	HoursWorked     string `json:"hours_worked"`
	TaxCode         string `json:"tax_code"`
	PensionPercent  string `json:"pension_percent"`
	ChildSupport    string `json:"child_support"`
	OtherDeductions string `json:"other_deductions"`
	WeekStartDate   string `json:"week_start_date"`
}

// DefaultFormState returns the values shown to a first-time user
func DefaultFormState() FormState {
	return FormState{
		TaxCode:        DefaultTaxCode,
		PensionPercent: DefaultPensionPercent.String(),
	}
}
