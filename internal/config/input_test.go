package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

const testRates = `
tax_year: "2025/26"
personal_allowance: 12570
basic_rate:
  threshold: 37700
  rate: 0.20
higher_rate:
  threshold: 125140
  rate: 0.40
additional_rate:
  threshold: 125140
  rate: 0.45
national_insurance:
  weekly:
    threshold: 242
    rate: 0.08
    upper_threshold: 967
    upper_rate: 0.02
  monthly:
    threshold: 1048
    rate: 0.08
    upper_threshold: 4189
    upper_rate: 0.02
`

func TestInputParser_LoadRates(t *testing.T) {
	parser := NewInputParser()

	rates, err := parser.LoadRates(writeFile(t, "rates.yaml", testRates))
	require.NoError(t, err)

	assert.Equal(t, "2025/26", rates.TaxYear)
	assert.Equal(t, "12570", rates.PersonalAllowance.String())
	assert.Equal(t, "0.2", rates.BasicRate.Rate.String())
	assert.Equal(t, "0.08", rates.NIFor(domain.Weekly).Rate.String())
	assert.Equal(t, "1048", rates.NIFor(domain.Monthly).Threshold.String())
	assert.Equal(t, "242", rates.NIFor(domain.Yearly).Threshold.String(), "Missing frequencies fall back to weekly")
}

func TestInputParser_LoadRates_Errors(t *testing.T) {
	parser := NewInputParser()

	_, err := parser.LoadRates(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read file")

	_, err = parser.LoadRates(writeFile(t, "bad.yaml", "basic_rate: [oops"))
	assert.ErrorContains(t, err, "failed to parse YAML")
}

func TestInputParser_ValidateRateTable(t *testing.T) {
	parser := NewInputParser()

	tests := []struct {
		name    string
		modify  func(rt *domain.RateTable)
		wantErr string
	}{
		{"default table is valid", func(rt *domain.RateTable) {}, ""},
		{"negative allowance", func(rt *domain.RateTable) { rt.PersonalAllowance = decimal.NewFromInt(-1) }, "personal allowance cannot be negative"},
		{"rate above one", func(rt *domain.RateTable) { rt.BasicRate.Rate = decimal.NewFromInt(20) }, "basic_rate must be between 0 and 1"},
		{"thresholds out of order", func(rt *domain.RateTable) { rt.HigherRate.Threshold = decimal.NewFromInt(100) }, "higher_rate threshold must not be below basic_rate threshold"},
		{"no weekly NI", func(rt *domain.RateTable) { delete(rt.NationalInsurance, domain.Weekly) }, "national_insurance must include weekly rates"},
		{"unknown NI frequency", func(rt *domain.RateTable) { rt.NationalInsurance["daily"] = rt.NationalInsurance[domain.Weekly] }, `unknown frequency "daily"`},
		{"NI upper below threshold", func(rt *domain.RateTable) {
			ni := rt.NationalInsurance[domain.Monthly]
			ni.UpperThreshold = decimal.NewFromInt(10)
			rt.NationalInsurance[domain.Monthly] = ni
		}, "national_insurance.monthly upper_threshold must not be below threshold"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := domain.DefaultRateTable()
			tt.modify(&rt)
			err := parser.ValidateRateTable(&rt)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestSaveRates_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.yaml")
	require.NoError(t, SaveRates(domain.DefaultRateTable(), path))

	rates, err := NewInputParser().LoadRates(path)
	require.NoError(t, err)
	assert.Equal(t, "2024/25", rates.TaxYear)
	assert.True(t, rates.HigherRate.Threshold.Equal(decimal.NewFromInt(125140)))
	assert.Len(t, rates.NationalInsurance, 3)
}

func TestInputParser_LoadInput(t *testing.T) {
	path := writeFile(t, "week.yaml", `
pay_rate: 12.50
hours_worked: 40
pension_percent: 3.9
child_support: 5
week_start: "2024-06-03"
`)

	in, err := NewInputParser().LoadInput(path)
	require.NoError(t, err)

	assert.Equal(t, "12.5", in.PayRate.String())
	assert.Equal(t, "40", in.HoursWorked.String())
	assert.Equal(t, domain.DefaultTaxCode, in.TaxCode)
	assert.Equal(t, domain.Weekly, in.Frequency)
	assert.Equal(t, "5", in.ChildSupport.String())
	assert.Equal(t, "2024-06-03", in.WeekStart)
}

func TestInputParser_LoadInput_Errors(t *testing.T) {
	parser := NewInputParser()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"zero hours", "pay_rate: 10\nhours_worked: 0\n", "invalid hours worked"},
		{"unknown frequency", "pay_rate: 10\nhours_worked: 1\nfrequency: daily\n", "invalid frequency"},
		{"bad week start", "pay_rate: 10\nhours_worked: 1\nweek_start: June\n", "invalid week_start"},
		{"not a number", "pay_rate: lots\nhours_worked: 1\n", "failed to parse YAML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.LoadInput(writeFile(t, "in.yaml", tt.content))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
