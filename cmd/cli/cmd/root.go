// Package cmd provides the CLI commands for booking-cost.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"booking-cost/internal/config"
	"booking-cost/internal/logging"
)

// Version is set at build time
var Version = "0.1.0"

var (
	cfgFile   string
	ratesFile string
	verbose   bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "booking-cost",
	Short: "Price hourly bookings against day, evening and night rates",
	Long: `booking-cost prices a booking by splitting it into the rate bands it
crosses (day 08:00-18:00, evening 18:00-22:00, night 22:00-08:00) and
summing each band's hourly price.

Examples:
  booking-cost quote --start 17:00 --end 19:00
  booking-cost quote --start 08:00 --end 18:00 --mode subscription --days 5
  booking-cost quote --start 23:00 --end 02:00 --format json
  booking-cost rates list`,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.booking-cost.json)")
	rootCmd.PersistentFlags().StringVar(&ratesFile, "rates", "", "HCL rate table (default is the built-in table)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if ratesFile != "" {
		cfg.Pricing.RatesFile = ratesFile
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	return nil
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "booking-cost version %s\n", Version)
	},
}
