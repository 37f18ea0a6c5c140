package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/rgehrsitz/paygo/internal/output"
	"github.com/spf13/cobra"
)

func (a *app) weeksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weeks",
		Short: "Manage saved weeks",
	}
	cmd.AddCommand(a.weeksListCmd(), a.weeksShowCmd(), a.weeksDeleteCmd())
	return cmd
}

func (a *app) weeksListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved weeks, latest payday first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, kv, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer kv.Close()

			weeks, err := store.ListByPayday(cmd.Context())
			if err != nil {
				return err
			}
			if len(weeks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No saved weeks.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(tw, "ID\tWeek start\tPayday\tHours\tGross\tNet\t")
			for _, w := range weeks {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
					w.ID,
					w.WeekStart.Format(domain.DateLayout),
					w.Payday.Format(domain.DateLayout),
					w.HoursWorked.String(),
					output.FormatCurrency(w.GrossPay),
					output.FormatCurrency(w.NetPay))
			}
			return tw.Flush()
		},
	}
}

func (a *app) weeksShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a saved week",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, kv, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer kv.Close()

			week, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			writeWeek(cmd.OutOrStdout(), week)
			return nil
		},
	}
}

func (a *app) weeksDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved week",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, kv, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer kv.Close()

			if err := store.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.logger.Info("deleted week", "id", args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted week %s\n", args[0])
			return nil
		},
	}
}

func writeWeek(w io.Writer, week domain.WeekRecord) {
	line := func(label, value string) {
		fmt.Fprintf(w, "%-20s %s\n", label, value)
	}
	line("ID", week.ID)
	line("Week", fmt.Sprintf("%s to %s", week.WeekStart.Format(domain.DateLayout), week.WeekEnd.Format(domain.DateLayout)))
	line("Payday", week.Payday.Format(domain.DateLayout))
	line("Pay rate", output.FormatCurrency(week.PayRate))
	line("Hours worked", week.HoursWorked.String())
	line("Tax code", week.TaxCode)
	line("Gross pay", output.FormatCurrency(week.GrossPay))
	line("Income tax", output.FormatCurrency(week.IncomeTax))
	line("National Insurance", output.FormatCurrency(week.NationalInsurance))
	line("Pension", fmt.Sprintf("%s (%s%%)", output.FormatCurrency(week.Pension), week.PensionPercent.String()))
	line("Child support", output.FormatCurrency(week.ChildSupport))
	line("Other deductions", output.FormatCurrency(week.OtherDeductions))
	line("Total deductions", output.FormatCurrency(week.TotalDeductions))
	line("Net pay", output.FormatCurrency(week.NetPay))
	line("Saved", week.Timestamp.Format("2006-01-02 15:04"))
}
