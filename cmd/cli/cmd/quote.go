// Package cmd - quote command
package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"booking-cost/core/booking"
	"booking-cost/core/clock"
	"booking-cost/core/output"
	"booking-cost/internal/config"
	"booking-cost/internal/errors"
	"booking-cost/internal/logging"
)

var (
	quoteStart     string
	quoteEnd       string
	quoteMode      string
	quoteDays      int
	quoteFormat    string
	quoteMask      bool
	quoteBreakdown bool
)

// quoteCmd represents the quote command
var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Price a booking",
	Long: `Price a booking between two times of day.

Times are HH:MM; a bare hour such as "9" becomes "9:00". An end of 00:00
closes the day. A booking that starts and ends inside the night band may
cross midnight (23:00-02:00). Subscription bookings are multiplied by --days.

Examples:
  booking-cost quote --start 08:00 --end 18:00
  booking-cost quote --start 0800 --end 1730 --mask
  booking-cost quote -s 08:00 -e 18:00 -m subscription -d 5 -f json`,
	Args: cobra.NoArgs,
	RunE: runQuote,
}

func init() {
	rootCmd.AddCommand(quoteCmd)

	quoteCmd.Flags().StringVarP(&quoteStart, "start", "s", "", "start time HH:MM [REQUIRED]")
	quoteCmd.Flags().StringVarP(&quoteEnd, "end", "e", "", "end time HH:MM [REQUIRED]")
	quoteCmd.Flags().StringVarP(&quoteMode, "mode", "m", "one_time", "payment mode (one_time, subscription)")
	quoteCmd.Flags().IntVarP(&quoteDays, "days", "d", 1, "number of days for a subscription")
	quoteCmd.Flags().StringVarP(&quoteFormat, "format", "f", "", "output format (cli, json); default from config")
	quoteCmd.Flags().BoolVar(&quoteMask, "mask", false, "apply the HH:MM input mask to raw digits")
	quoteCmd.Flags().BoolVarP(&quoteBreakdown, "breakdown", "b", true, "show the per-band breakdown")

	_ = quoteCmd.MarkFlagRequired("start")
	_ = quoteCmd.MarkFlagRequired("end")
}

func runQuote(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	log := logging.Named("quote")

	table, err := cfg.RateTable()
	if err != nil {
		return err
	}

	start, end := quoteStart, quoteEnd
	if quoteMask {
		start, end = clock.Mask(start), clock.Mask(end)
	}

	log.Debug("pricing booking",
		zap.String("start", start),
		zap.String("end", end),
		zap.String("mode", quoteMode),
		zap.Int("days", quoteDays),
		zap.String("currency", table.Currency()),
	)

	q, err := booking.NewCalculator(table).QuoteInput(start, end, quoteMode, quoteDays)
	if err != nil {
		log.Debug("booking rejected", zap.String("type", string(errors.TypeOf(err))), zap.Error(err))
		return err
	}

	format := quoteFormat
	if format == "" {
		format = cfg.Output.DefaultFormat
	}
	f, err := output.Lookup(format)
	if err != nil {
		return err
	}

	breakdown := cfg.Output.ShowBreakdown
	if cmd.Flags().Changed("breakdown") {
		breakdown = quoteBreakdown
	}

	log.Debug("booking priced", zap.Int64("total", q.Total), zap.Int("segments", len(q.Segments)))
	return f.RenderQuote(cmd.OutOrStdout(), q, output.Options{ShowBreakdown: breakdown})
}
