package main

import (
	"fmt"

	"github.com/rgehrsitz/paygo/internal/compare"
	"github.com/spf13/cobra"
)

func (a *app) compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare saved weeks recalculated with the current rates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, _ := cmd.Flags().GetString("format")

			engine, err := a.newEngine()
			if err != nil {
				return err
			}
			store, kv, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer kv.Close()

			weeks, err := store.ListByPayday(cmd.Context())
			if err != nil {
				return err
			}
			compSet := compare.NewCompareEngine(engine).Build(weeks)

			var out string
			switch format {
			case "table":
				out = (&compare.TableFormatter{}).Format(compSet)
			case "csv":
				out, err = (&compare.CSVFormatter{}).Format(compSet)
			case "json":
				out, err = (&compare.JSONFormatter{Pretty: true}).Format(compSet)
			default:
				return fmt.Errorf("unsupported format: %s (available: table, csv, json)", format)
			}
			if err != nil {
				return fmt.Errorf("failed to format comparison: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json)")
	return cmd
}
