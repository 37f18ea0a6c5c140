package domain

import (
	"github.com/shopspring/decimal"
)

// RateTable contains the income tax and National Insurance rates for one tax year.
// The built-in table can be replaced by a YAML file with the same shape (see config.InputParser).
type RateTable struct {
	TaxYear           string                `yaml:"tax_year" json:"tax_year"`
	PersonalAllowance decimal.Decimal       `yaml:"personal_allowance" json:"personal_allowance"`
	BasicRate         TaxBand               `yaml:"basic_rate" json:"basic_rate"`
	HigherRate        TaxBand               `yaml:"higher_rate" json:"higher_rate"`
	AdditionalRate    TaxBand               `yaml:"additional_rate" json:"additional_rate"`
	NationalInsurance map[Frequency]NIRates `yaml:"national_insurance" json:"national_insurance"`
}

// TaxBand is an income tax band. Threshold is annual and measured above the personal allowance.
type TaxBand struct {
	Threshold decimal.Decimal `yaml:"threshold" json:"threshold"`
	Rate      decimal.Decimal `yaml:"rate" json:"rate"`
}

// NIRates contains employee Class 1 NI rates for a single pay period length
type NIRates struct {
	Threshold      decimal.Decimal `yaml:"threshold" json:"threshold"`
	Rate           decimal.Decimal `yaml:"rate" json:"rate"`
	UpperThreshold decimal.Decimal `yaml:"upper_threshold" json:"upper_threshold"`
	UpperRate      decimal.Decimal `yaml:"upper_rate" json:"upper_rate"`
}

// DefaultPersonalAllowance is the 2024/25 standard personal allowance, used when a tax code carries no number
var DefaultPersonalAllowance = decimal.NewFromInt(12570)

// DefaultRateTable returns the HMRC 2024/25 rates
func DefaultRateTable() RateTable {
	return RateTable{
		TaxYear:           "2024/25",
		PersonalAllowance: DefaultPersonalAllowance,
		BasicRate:         TaxBand{Threshold: decimal.NewFromInt(37700), Rate: decimal.RequireFromString("0.20")},
		HigherRate:        TaxBand{Threshold: decimal.NewFromInt(125140), Rate: decimal.RequireFromString("0.40")},
		AdditionalRate:    TaxBand{Threshold: decimal.NewFromInt(125140), Rate: decimal.RequireFromString("0.45")},
		NationalInsurance: map[Frequency]NIRates{
			Weekly: {
				Threshold:      decimal.NewFromInt(242),
				Rate:           decimal.RequireFromString("0.12"),
				UpperThreshold: decimal.NewFromInt(967),
				UpperRate:      decimal.RequireFromString("0.02"),
			},
			Monthly: {
				Threshold:      decimal.NewFromInt(1048),
				Rate:           decimal.RequireFromString("0.12"),
				UpperThreshold: decimal.NewFromInt(4189),
				UpperRate:      decimal.RequireFromString("0.02"),
			},
			Yearly: {
				Threshold:      decimal.NewFromInt(12570),
				Rate:           decimal.RequireFromString("0.12"),
				UpperThreshold: decimal.NewFromInt(50270),
				UpperRate:      decimal.RequireFromString("0.02"),
			},
		},
	}
}

// NIFor returns the NI rates for a frequency, falling back to the weekly rates
func (rt RateTable) NIFor(freq Frequency) NIRates {
	if rates, ok := rt.NationalInsurance[freq]; ok {
		return rates
	}
	return rt.NationalInsurance[Weekly]
}
