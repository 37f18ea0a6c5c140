package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/paygo/internal/calculation"
	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func buildTestPayslip(t *testing.T, taxCode string, rate string) *domain.Payslip {
	t.Helper()
	slip, err := calculation.NewDeductionEngine().Payslip(domain.DeductionInput{
		PayRate:         decimal.RequireFromString(rate),
		HoursWorked:     decimal.NewFromInt(40),
		TaxCode:         taxCode,
		PensionPercent:  decimal.RequireFromString("3.9"),
		OtherDeductions: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	return slip
}

func TestFormatterFunc(t *testing.T) {
	called := false
	f := FormatterFunc{
		ID: "test-formatter",
		F: func(slip *domain.Payslip) ([]byte, error) {
			called = true
			return []byte("test output"), nil
		},
	}

	out, err := f.Format(&domain.Payslip{})
	assert.NoError(t, err)
	assert.True(t, called, "Should call the function")
	assert.Equal(t, []byte("test output"), out)
	assert.Equal(t, "test-formatter", f.Name())
}

func TestGetFormatterByName(t *testing.T) {
	assert.Equal(t, "console", GetFormatterByName("console").Name())
	assert.Equal(t, "console", GetFormatterByName("TEXT").Name())
	assert.Equal(t, "json", GetFormatterByName("json").Name())
	assert.Equal(t, "yaml", GetFormatterByName("yml").Name())
	assert.Nil(t, GetFormatterByName("html"))

	assert.Contains(t, AvailableFormats(), "yaml")
}

func TestConsoleFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestPayslip(t, "1257L", "12.50"))
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, "PAY BREAKDOWN")
	assert.Contains(t, text, "Tax code: 1257L")
	assert.Contains(t, text, "£500.00")
	assert.Contains(t, text, "Income Tax (Cumulative)")
	assert.Contains(t, text, "Basic Rate (20%)")
	assert.NotContains(t, text, "Higher Rate", "Zero bands are hidden")
	assert.Contains(t, text, "Standard Rate (12%)")
	assert.NotContains(t, text, "Reduced Rate")
	assert.Contains(t, text, "Pension (3.9%)")
	assert.Contains(t, text, "Other Deductions")
	assert.NotContains(t, text, "Child Support")
	assert.Contains(t, text, "£387.89")
	assert.NotContains(t, text, "Note:")
}

func TestConsoleFormatter_EmergencyNote(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestPayslip(t, "W1", "30"))
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, "Income Tax (Non-cumulative)")
	assert.Contains(t, text, "Note: emergency tax code")
	assert.Contains(t, text, "Income tax without adjustment would be £334.92")
	assert.Contains(t, text, "Reduced Rate (2%)")
}

func TestConsoleFormatter_Empty(t *testing.T) {
	_, err := ConsoleFormatter{}.Format(nil)
	assert.Error(t, err)
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{Pretty: true}.Format(buildTestPayslip(t, "1257L", "12.50"))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	result := decoded["result"].(map[string]any)
	assert.Equal(t, "51.65", result["income_tax"])
	assert.Equal(t, "387.89", result["net_pay"])
	assert.Contains(t, decoded, "breakdown")

	compact, err := JSONFormatter{}.Format(buildTestPayslip(t, "1257L", "12.50"))
	require.NoError(t, err)
	assert.False(t, bytes.Contains(compact, []byte("\n")))
}

func TestYAMLFormatter(t *testing.T) {
	out, err := YAMLFormatter{}.Format(buildTestPayslip(t, "1257L", "12.50"))
	require.NoError(t, err)

	var decoded struct {
		Result struct {
			IncomeTax string `yaml:"income_tax"`
			TaxCode   string `yaml:"tax_code"`
		} `yaml:"result"`
	}
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, "51.65", decoded.Result.IncomeTax)
	assert.Equal(t, "1257L", decoded.Result.TaxCode)
}

func TestWriteFormatted(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFormatted(&buf, "console", buildTestPayslip(t, "1257L", "12.50")))
	assert.True(t, strings.HasPrefix(buf.String(), "PAY BREAKDOWN"))

	err := WriteFormatted(&buf, "pdf", buildTestPayslip(t, "1257L", "12.50"))
	assert.ErrorContains(t, err, "unsupported format: pdf")
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "£1234.50", FormatCurrency(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "£0.00", FormatCurrency(decimal.Zero))
	assert.Equal(t, "-£3.10", FormatCurrency(decimal.RequireFromString("-3.1")))
	assert.Equal(t, "3.90%", FormatPercentage(decimal.RequireFromString("3.9")))
	assert.Equal(t, "20%", FormatRate(decimal.RequireFromString("0.20")))
	assert.Equal(t, "45%", FormatRate(decimal.RequireFromString("0.45")))
}
