// Package cmd - rate table commands
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"booking-cost/core/output"
	"booking-cost/core/rates"
	"booking-cost/internal/config"
	"booking-cost/internal/logging"
)

var ratesFormat string

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Inspect rate tables",
}

var ratesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the active rate table",
	Args:  cobra.NoArgs,
	RunE:  runRatesList,
}

var ratesValidateCmd = &cobra.Command{
	Use:   "validate <file.hcl>",
	Short: "Check that a rate file covers every minute exactly once",
	Long: `Parse an HCL rate file and check it.

A valid table has unique band names, non-negative prices and bands that
together cover each minute of the day exactly once.`,
	Args: cobra.ExactArgs(1),
	RunE: runRatesValidate,
}

func init() {
	rootCmd.AddCommand(ratesCmd)
	ratesCmd.AddCommand(ratesListCmd)
	ratesCmd.AddCommand(ratesValidateCmd)

	ratesListCmd.Flags().StringVarP(&ratesFormat, "format", "f", "", "output format (cli, json); default from config")
}

func runRatesList(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	table, err := cfg.RateTable()
	if err != nil {
		return err
	}

	format := ratesFormat
	if format == "" {
		format = cfg.Output.DefaultFormat
	}
	f, err := output.Lookup(format)
	if err != nil {
		return err
	}
	return f.RenderTable(cmd.OutOrStdout(), table)
}

func runRatesValidate(cmd *cobra.Command, args []string) error {
	table, err := rates.LoadFile(args[0])
	if err != nil {
		logging.Named("rates").Debug(err.Error())
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d bands, currency %s\n", args[0], table.Len(), table.Currency())
	return nil
}
