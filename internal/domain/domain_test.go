package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestParseFrequency(t *testing.T) {
	tests := []struct {
		input    string
		expected Frequency
		wantErr  bool
	}{
		{"", Weekly, false},
		{"weekly", Weekly, false},
		{" Monthly ", Monthly, false},
		{"FORTNIGHTLY", Fortnightly, false},
		{"yearly", Yearly, false},
		{"daily", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			f, err := ParseFrequency(tt.input)
			if tt.wantErr {
				assert.True(t, IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, f)
		})
	}
}

func TestFrequency_WeeksPerPeriod(t *testing.T) {
	assert.Equal(t, "1", Weekly.WeeksPerPeriod().String())
	assert.Equal(t, "2", Fortnightly.WeeksPerPeriod().String())
	assert.Equal(t, "4.33", Monthly.WeeksPerPeriod().String())
	assert.Equal(t, "52", Yearly.WeeksPerPeriod().String())
	assert.Equal(t, "1", Frequency("daily").WeeksPerPeriod().String(), "Unknown frequencies count as one week")
	assert.Len(t, Frequencies(), 4)
}

func TestRateTable_NIFor(t *testing.T) {
	rt := DefaultRateTable()

	assert.Equal(t, "1048", rt.NIFor(Monthly).Threshold.String())
	assert.Equal(t, "242", rt.NIFor(Weekly).Threshold.String())
	assert.Equal(t, "242", rt.NIFor(Fortnightly).Threshold.String(), "Frequencies without a table use weekly rates")
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Field: "pay rate", Reason: "must be greater than zero"}
	assert.Equal(t, "invalid pay rate: must be greater than zero", err.Error())

	bare := &ValidationError{Reason: "nothing to compare"}
	assert.Equal(t, "validation failed: nothing to compare", bare.Error())

	wrapped := errors.Join(assert.AnError, err)
	assert.True(t, IsValidationError(wrapped))
	assert.False(t, IsValidationError(assert.AnError))
}

func TestParsedTaxCode_CanonicalString(t *testing.T) {
	tests := []struct {
		name     string
		code     ParsedTaxCode
		expected string
	}{
		{"cumulative", ParsedTaxCode{PersonalAllowance: decimal.NewFromInt(12570), IsCumulative: true}, "C1257"},
		{"non-cumulative", ParsedTaxCode{PersonalAllowance: decimal.NewFromInt(10000)}, "L1000"},
		{"emergency", ParsedTaxCode{PersonalAllowance: decimal.NewFromInt(10), Adjustments: []Adjustment{EmergencyTax}}, "W1"},
		{"k code", ParsedTaxCode{PersonalAllowance: decimal.NewFromInt(5000), IsCumulative: true, Adjustments: []Adjustment{AdditionalTax}}, "K500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.code.CanonicalString())
		})
	}
}

func TestParsedTaxCode_Describe(t *testing.T) {
	code := ParsedTaxCode{Adjustments: []Adjustment{EmergencyTax, AdditionalTax}}
	assert.Equal(t, "Non-cumulative", code.Basis())
	assert.Equal(t, "emergency_tax, additional_tax", code.AdjustmentNames())
	assert.True(t, code.Has(AdditionalTax))

	code.IsCumulative = true
	code.Adjustments = nil
	assert.Equal(t, "Cumulative", code.Basis())
	assert.Equal(t, "", code.AdjustmentNames())
	assert.False(t, code.Has(EmergencyTax))
}

func TestDeductionInput_GrossPay(t *testing.T) {
	in := DeductionInput{PayRate: decimal.RequireFromString("12.50"), HoursWorked: decimal.RequireFromString("37.5")}
	assert.Equal(t, "468.75", in.GrossPay().StringFixed(2))
	assert.NoError(t, in.Validate())
}

func TestWeekDates(t *testing.T) {
	end, payday := WeekDates(date("2024-06-03"))
	assert.Equal(t, "2024-06-09", end.Format(DateLayout))
	assert.Equal(t, "2024-06-14", payday.Format(DateLayout))
	assert.Equal(t, time.Friday, payday.Weekday())

	// Crosses a month boundary
	end, payday = WeekDates(date("2024-06-24"))
	assert.Equal(t, "2024-06-30", end.Format(DateLayout))
	assert.Equal(t, "2024-07-05", payday.Format(DateLayout))
}

func TestMondayOf(t *testing.T) {
	assert.Equal(t, "2024-06-03", MondayOf(date("2024-06-03")).Format(DateLayout))
	assert.Equal(t, "2024-06-03", MondayOf(date("2024-06-05")).Format(DateLayout))
	assert.Equal(t, "2024-06-03", MondayOf(date("2024-06-09")).Format(DateLayout))
	assert.Equal(t, "2024-06-10", MondayOf(time.Date(2024, 6, 10, 23, 59, 0, 0, time.UTC)).Format(DateLayout))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("week start", "2024-06-03")
	require.NoError(t, err)
	assert.Equal(t, date("2024-06-03"), d)

	_, err = ParseDate("week start", "")
	assert.EqualError(t, err, "invalid week start: a date is required")

	_, err = ParseDate("week start", "03/06/2024")
	assert.True(t, IsValidationError(err))
}

func TestNewWeekRecord(t *testing.T) {
	in := DeductionInput{
		PayRate:        decimal.RequireFromString("12.50"),
		HoursWorked:    decimal.NewFromInt(40),
		TaxCode:        "1257L",
		PensionPercent: DefaultPensionPercent,
	}
	res := &DeductionResult{
		GrossPay:          decimal.RequireFromString("500.00"),
		IncomeTax:         decimal.RequireFromString("51.65"),
		NationalInsurance: decimal.RequireFromString("30.96"),
		Pension:           decimal.RequireFromString("19.50"),
		TotalDeductions:   decimal.RequireFromString("102.11"),
		NetPay:            decimal.RequireFromString("397.89"),
		TaxCode:           "1257L",
	}
	now := time.Date(2024, 6, 10, 9, 30, 0, 0, time.UTC)

	rec, err := NewWeekRecord(date("2024-06-03"), in, res, now)
	require.NoError(t, err)

	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "2024-06-09", rec.WeekEnd.Format(DateLayout))
	assert.Equal(t, "2024-06-14", rec.Payday.Format(DateLayout))
	assert.Equal(t, "397.89", rec.NetPay.StringFixed(2))
	assert.Equal(t, now, rec.Timestamp)

	other, err := NewWeekRecord(date("2024-06-03"), in, res, now)
	require.NoError(t, err)
	assert.NotEqual(t, rec.ID, other.ID, "IDs should be unique")
	assert.True(t, rec.SamePayday(other))

	roundTrip := rec.Input()
	assert.Equal(t, Weekly, roundTrip.Frequency)
	assert.True(t, roundTrip.PayRate.Equal(in.PayRate))

	_, err = NewWeekRecord(time.Time{}, in, res, now)
	assert.True(t, IsValidationError(err), "Missing week start should be rejected")

	_, err = NewWeekRecord(date("2024-06-03"), in, &DeductionResult{}, now)
	assert.True(t, IsValidationError(err), "Zero gross pay should be rejected")
}

func TestFormState_Input(t *testing.T) {
	form := FormState{
		PayRate:        "£12.50",
		HoursWorked:    " 40 ",
		PensionPercent: "3.9",
		ChildSupport:   "",
	}

	in, err := form.Input()
	require.NoError(t, err)
	assert.Equal(t, "12.5", in.PayRate.String())
	assert.Equal(t, "40", in.HoursWorked.String())
	assert.Equal(t, DefaultTaxCode, in.TaxCode)
	assert.Equal(t, Weekly, in.Frequency)
	assert.True(t, in.ChildSupport.IsZero())

	_, err = FormState{PayRate: "abc"}.Input()
	assert.EqualError(t, err, "invalid pay rate: not a number: abc")
}

func TestFormStateFromRecord(t *testing.T) {
	rec := WeekRecord{
		WeekStart:       date("2024-06-03"),
		PayRate:         decimal.RequireFromString("12.5"),
		HoursWorked:     decimal.NewFromInt(40),
		TaxCode:         "1257L",
		PensionPercent:  DefaultPensionPercent,
		ChildSupport:    decimal.Zero,
		OtherDeductions: decimal.NewFromInt(5),
	}

	form := FormStateFromRecord(rec)
	assert.Equal(t, "2024-06-03", form.WeekStartDate)
	assert.Equal(t, "12.5", form.PayRate)
	assert.Equal(t, "5", form.OtherDeductions)

	in, err := form.Input()
	require.NoError(t, err)
	assert.True(t, in.OtherDeductions.Equal(rec.OtherDeductions))
}

func TestDefaultFormState(t *testing.T) {
	form := DefaultFormState()
	assert.Equal(t, "C1257L", form.TaxCode)
	assert.Equal(t, "3.9", form.PensionPercent)
}
