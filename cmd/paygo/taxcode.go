package main

import (
	"fmt"

	"github.com/rgehrsitz/paygo/internal/calculation"
	"github.com/rgehrsitz/paygo/internal/output"
	"github.com/spf13/cobra"
)

func (a *app) taxCodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "taxcode <code>",
		Short: "Show how a tax code is read",
		Example: `  paygo taxcode 1257L
  paygo taxcode W1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := a.newEngine()
			if err != nil {
				return err
			}

			parsed := engine.ParseTaxCode(args[0])
			bands := engine.TaxCalc.WeeklyBands(parsed.PersonalAllowance)

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-28s %s\n", "Tax code", args[0])
			fmt.Fprintf(w, "%-28s %s\n", "Personal allowance", output.FormatCurrency(parsed.PersonalAllowance))
			fmt.Fprintf(w, "%-28s %s\n", "Weekly allowance", output.FormatCurrency(calculation.RoundCurrency(bands.PersonalAllowance)))
			fmt.Fprintf(w, "%-28s %s\n", "Weekly basic rate band", output.FormatCurrency(calculation.RoundCurrency(bands.BasicWidth)))
			fmt.Fprintf(w, "%-28s %s\n", "Basis", parsed.Basis())
			if len(parsed.Adjustments) > 0 {
				fmt.Fprintf(w, "%-28s %s\n", "Adjustments", parsed.AdjustmentNames())
				for _, adj := range parsed.Adjustments {
					fmt.Fprintf(w, "  %s\n", output.AdjustmentNote(adj))
				}
			}
			fmt.Fprintf(w, "%-28s %s\n", "Canonical form", parsed.CanonicalString())
			return nil
		},
	}
}
