package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rgehrsitz/paygo/internal/config"
	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/rgehrsitz/paygo/internal/output"
	"github.com/rgehrsitz/paygo/internal/storage"
	"github.com/spf13/cobra"
)

func (a *app) calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate deductions and net pay for one pay period",
		Example: `  paygo calculate --rate 12.50 --hours 40
  paygo calculate --rate 12.50 --hours 40 --tax-code W1 --format json
  paygo calculate --input week.yaml --save --week-start 2024-06-03`,
		Args: cobra.NoArgs,
		RunE: a.runCalculate,
	}

	f := cmd.Flags()
	f.String("rate", "", "hourly pay rate in pounds")
	f.String("hours", "", "hours worked in the period")
	f.String("tax-code", domain.DefaultTaxCode, "HMRC tax code")
	f.String("frequency", string(domain.Weekly), "pay frequency (weekly, fortnightly, monthly, yearly)")
	f.String("pension", domain.DefaultPensionPercent.String(), "pension contribution percent")
	f.String("child-support", "0", "child support deduction in pounds")
	f.String("other", "0", "other deductions in pounds")
	f.StringP("input", "i", "", "read the calculation from a YAML file instead of flags")
	f.StringP("format", "f", "", fmt.Sprintf("output format (%s)", joinFormats()))
	f.Bool("save", false, "save the result as a week")
	f.String("week-start", "", "week start date (YYYY-MM-DD) for --save")
	f.Bool("overwrite", false, "replace a saved week with the same payday")
	return cmd
}

func (a *app) runCalculate(cmd *cobra.Command, _ []string) error {
	in, weekStart, err := a.readInput(cmd)
	if err != nil {
		return err
	}

	engine, err := a.newEngine()
	if err != nil {
		return err
	}

	slip, err := engine.Payslip(in)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	if format == "" {
		format = a.settings.Format
	}
	if err := output.WriteFormatted(cmd.OutOrStdout(), format, slip); err != nil {
		return err
	}

	if save, _ := cmd.Flags().GetBool("save"); !save {
		return nil
	}
	if in.Frequency != domain.Weekly {
		return &domain.ValidationError{Field: "frequency", Reason: "only weekly pay can be saved as a week"}
	}

	var start time.Time
	if weekStart != "" {
		if start, err = domain.ParseDate("week start", weekStart); err != nil {
			return err
		}
	}
	rec, err := domain.NewWeekRecord(start, in, slip.Result, time.Now())
	if err != nil {
		return err
	}

	store, kv, err := a.openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer kv.Close()

	overwrite, _ := cmd.Flags().GetBool("overwrite")
	if err := store.Save(cmd.Context(), rec, overwrite); err != nil {
		if errors.Is(err, storage.ErrDuplicatePayday) {
			return fmt.Errorf("%w (use --overwrite to replace it)", err)
		}
		return err
	}

	a.logger.Info("saved week", "id", rec.ID, "payday", rec.Payday.Format(domain.DateLayout))
	fmt.Fprintf(cmd.ErrOrStderr(), "Saved week starting %s (paid %s) as %s\n",
		rec.WeekStart.Format(domain.DateLayout), rec.Payday.Format(domain.DateLayout), rec.ID)
	return nil
}

// readInput builds the calculation input from --input or the individual flags.
// --week-start overrides the file's week_start.
func (a *app) readInput(cmd *cobra.Command) (domain.DeductionInput, string, error) {
	flags := cmd.Flags()
	weekStart, _ := flags.GetString("week-start")

	if inputFile, _ := flags.GetString("input"); inputFile != "" {
		pi, err := config.NewInputParser().LoadInput(config.ExpandPath(inputFile))
		if err != nil {
			return domain.DeductionInput{}, "", err
		}
		if weekStart == "" {
			weekStart = pi.WeekStart
		}
		return pi.DeductionInput, weekStart, nil
	}

	get := func(name string) string {
		v, _ := flags.GetString(name)
		return v
	}
	form := domain.FormState{
		PayRate:         get("rate"),
		HoursWorked:     get("hours"),
		TaxCode:         get("tax-code"),
		PensionPercent:  get("pension"),
		ChildSupport:    get("child-support"),
		OtherDeductions: get("other"),
	}
	in, err := form.Input()
	if err != nil {
		return domain.DeductionInput{}, "", err
	}
	if in.Frequency, err = domain.ParseFrequency(get("frequency")); err != nil {
		return domain.DeductionInput{}, "", err
	}
	return in, weekStart, nil
}

func joinFormats() string {
	return strings.Join(output.AvailableFormats(), ", ")
}
