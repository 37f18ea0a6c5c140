package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// PayInput is the on-disk form of a calculation request
type PayInput struct {
	domain.DeductionInput `yaml:",inline"`
	WeekStart             string `yaml:"week_start"`
}

// InputParser handles parsing of rate tables and pay input files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadRates loads a rate table from a YAML file and validates it
func (ip *InputParser) LoadRates(filename string) (*domain.RateTable, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var rates domain.RateTable
	if err := yaml.Unmarshal(data, &rates); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateRateTable(&rates); err != nil {
		return nil, fmt.Errorf("rate table validation failed: %w", err)
	}

	return &rates, nil
}

// LoadInput loads a pay input file. Missing tax code and frequency take their defaults.
func (ip *InputParser) LoadInput(filename string) (*PayInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var in PayInput
	if err := yaml.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if in.TaxCode == "" {
		in.TaxCode = domain.DefaultTaxCode
	}
	freq, err := domain.ParseFrequency(string(in.Frequency))
	if err != nil {
		return nil, err
	}
	in.Frequency = freq

	if err := in.Validate(); err != nil {
		return nil, err
	}
	if in.WeekStart != "" {
		if _, err := domain.ParseDate("week_start", in.WeekStart); err != nil {
			return nil, err
		}
	}

	return &in, nil
}

// ValidateRateTable validates a loaded rate table
func (ip *InputParser) ValidateRateTable(rates *domain.RateTable) error {
	if rates.PersonalAllowance.IsNegative() {
		return fmt.Errorf("personal allowance cannot be negative")
	}

	bands := []struct {
		name string
		band domain.TaxBand
	}{
		{"basic_rate", rates.BasicRate},
		{"higher_rate", rates.HigherRate},
		{"additional_rate", rates.AdditionalRate},
	}
	for _, b := range bands {
		if err := validateRate(b.name, b.band.Rate); err != nil {
			return err
		}
		if b.band.Threshold.IsNegative() {
			return fmt.Errorf("%s threshold cannot be negative", b.name)
		}
	}
	if rates.HigherRate.Threshold.LessThan(rates.BasicRate.Threshold) {
		return fmt.Errorf("higher_rate threshold must not be below basic_rate threshold")
	}
	if rates.AdditionalRate.Threshold.LessThan(rates.HigherRate.Threshold) {
		return fmt.Errorf("additional_rate threshold must not be below higher_rate threshold")
	}

	if _, ok := rates.NationalInsurance[domain.Weekly]; !ok {
		return fmt.Errorf("national_insurance must include weekly rates")
	}
	for freq, ni := range rates.NationalInsurance {
		if !freq.Valid() {
			return fmt.Errorf("national_insurance: unknown frequency %q", freq)
		}
		if err := validateRate(fmt.Sprintf("national_insurance.%s rate", freq), ni.Rate); err != nil {
			return err
		}
		if err := validateRate(fmt.Sprintf("national_insurance.%s upper_rate", freq), ni.UpperRate); err != nil {
			return err
		}
		if ni.Threshold.IsNegative() {
			return fmt.Errorf("national_insurance.%s threshold cannot be negative", freq)
		}
		if ni.UpperThreshold.LessThan(ni.Threshold) {
			return fmt.Errorf("national_insurance.%s upper_threshold must not be below threshold", freq)
		}
	}

	return nil
}

func validateRate(name string, rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%s must be between 0 and 1, got %s", name, rate.String())
	}
	return nil
}

// SaveRates writes a rate table as YAML, for use as a starting point for a custom table
func SaveRates(rates domain.RateTable, filename string) error {
	data, err := yaml.Marshal(rates)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}
