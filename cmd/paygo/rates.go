package main

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/paygo/internal/config"
	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/rgehrsitz/paygo/internal/output"
	"github.com/spf13/cobra"
)

func (a *app) ratesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Show or validate the rate table",
		Long: `Show the rate table in use. With --rates the file is loaded and validated
first. --export writes the table as YAML to start a custom rate file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := a.newEngine()
			if err != nil {
				return err
			}
			rates := engine.Rates

			if export, _ := cmd.Flags().GetString("export"); export != "" {
				path := config.ExpandPath(export)
				if err := config.SaveRates(rates, path); err != nil {
					return fmt.Errorf("failed to export rates: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s rates to %s\n", rates.TaxYear, path)
				return nil
			}

			source := "built-in"
			if a.settings.RatesFile != "" {
				source = a.settings.RatesFile + " (valid)"
			}
			writeRates(cmd, rates, source)
			return nil
		},
	}

	cmd.Flags().String("export", "", "write the rate table to this YAML file")
	return cmd
}

func writeRates(cmd *cobra.Command, rates domain.RateTable, source string) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Tax year %s (%s)\n\n", rates.TaxYear, source)
	fmt.Fprintf(w, "%-22s %s\n", "Personal allowance", output.FormatCurrency(rates.PersonalAllowance))
	fmt.Fprintf(w, "%-22s %s up to %s\n", "Basic rate", output.FormatRate(rates.BasicRate.Rate), output.FormatCurrency(rates.BasicRate.Threshold))
	fmt.Fprintf(w, "%-22s %s up to %s\n", "Higher rate", output.FormatRate(rates.HigherRate.Rate), output.FormatCurrency(rates.HigherRate.Threshold))
	fmt.Fprintf(w, "%-22s %s above %s\n", "Additional rate", output.FormatRate(rates.AdditionalRate.Rate), output.FormatCurrency(rates.AdditionalRate.Threshold))

	freqs := make([]string, 0, len(rates.NationalInsurance))
	for f := range rates.NationalInsurance {
		freqs = append(freqs, string(f))
	}
	sort.Strings(freqs)

	fmt.Fprintln(w, "\nNational Insurance")
	for _, f := range freqs {
		ni := rates.NationalInsurance[domain.Frequency(f)]
		fmt.Fprintf(w, "  %-12s %s from %s, %s above %s\n", f,
			output.FormatRate(ni.Rate), output.FormatCurrency(ni.Threshold),
			output.FormatRate(ni.UpperRate), output.FormatCurrency(ni.UpperThreshold))
	}
}
