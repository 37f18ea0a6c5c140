package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Frequency is a pay period length
type Frequency string

const (
	Weekly      Frequency = "weekly"
	Fortnightly Frequency = "fortnightly"
	Monthly     Frequency = "monthly"
	Yearly      Frequency = "yearly"
)

// weeksPerPeriod converts a pay period into weeks. Monthly uses 4.33, so
// non-weekly results are an approximation of HMRC's period tables.
var weeksPerPeriod = map[Frequency]decimal.Decimal{
	Weekly:      decimal.NewFromInt(1),
	Fortnightly: decimal.NewFromInt(2),
	Monthly:     decimal.RequireFromString("4.33"),
	Yearly:      decimal.NewFromInt(52),
}

// Frequencies lists the supported pay frequencies
func Frequencies() []Frequency {
	return []Frequency{Weekly, Fortnightly, Monthly, Yearly}
}

// ParseFrequency parses a frequency name. An empty string means weekly.
func ParseFrequency(s string) (Frequency, error) {
	f := Frequency(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return Weekly, nil
	}
	if !f.Valid() {
		return "", &ValidationError{Field: "frequency", Reason: fmt.Sprintf("unknown pay frequency %q", s)}
	}
	return f, nil
}

// Valid reports whether f is a supported frequency
func (f Frequency) Valid() bool {
	_, ok := weeksPerPeriod[f]
	return ok
}

// WeeksPerPeriod returns the number of weeks in one pay period (1 for unknown frequencies)
func (f Frequency) WeeksPerPeriod() decimal.Decimal {
	if w, ok := weeksPerPeriod[f]; ok {
		return w
	}
	return weeksPerPeriod[Weekly]
}

func (f Frequency) String() string { return string(f) }
