package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/shopspring/decimal"
)

// Formatter renders a payslip in one output format
type Formatter interface {
	Name() string
	Format(slip *domain.Payslip) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(slip *domain.Payslip) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(slip *domain.Payslip) ([]byte, error) { return f.F(slip) }

var formatters = map[string]Formatter{
	"console": ConsoleFormatter{},
	"text":    ConsoleFormatter{},
	"json":    JSONFormatter{Pretty: true},
	"yaml":    YAMLFormatter{},
	"yml":     YAMLFormatter{},
}

// GetFormatterByName returns the formatter registered under name, or nil
func GetFormatterByName(name string) Formatter {
	return formatters[strings.ToLower(name)]
}

// AvailableFormats lists the registered format names, aliases included
func AvailableFormats() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteFormatted renders slip in the named format and writes it to w
func WriteFormatted(w io.Writer, format string, slip *domain.Payslip) error {
	f := GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unsupported format: %s (available: %s)", format, strings.Join(AvailableFormats(), ", "))
	}
	data, err := f.Format(slip)
	if err != nil {
		return fmt.Errorf("failed to format payslip as %s: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

// FormatCurrency formats a decimal as pounds and pence
func FormatCurrency(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-£" + amount.Abs().StringFixed(2)
	}
	return "£" + amount.StringFixed(2)
}

// FormatPercentage formats a decimal that is already a percentage
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}

// FormatRate formats a fractional rate such as 0.2 as "20%"
func FormatRate(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).String() + "%"
}
