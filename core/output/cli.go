package output

import (
	"fmt"
	"io"
	"text/tabwriter"

	"booking-cost/core/booking"
	"booking-cost/core/rates"
)

// CLIFormatter renders aligned plain-text tables
type CLIFormatter struct{}

// Format returns FormatCLI
func (f *CLIFormatter) Format() Format { return FormatCLI }

// RenderQuote writes the breakdown (optional) and the cost line.
func (f *CLIFormatter) RenderQuote(w io.Writer, q *booking.Quote, opts Options) error {
	if opts.ShowBreakdown && len(q.Segments) > 0 {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "BAND\tCODE\tFROM\tTO\tHOURS\tRATE\tAMOUNT")
		for _, s := range q.Segments {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
				s.Band, s.Code, s.From, s.To, s.Hours().Round(2), s.Rate, s.Amount)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	_, err := fmt.Fprintln(w, Summary(q))
	return err
}

// RenderTable writes one line per band.
func (f *CLIFormatter) RenderTable(w io.Writer, t *rates.Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "BAND\tCODE\tINTERVAL\tONE-TIME/H\tSUBSCRIPTION/H\n")
	for _, b := range t.Bands() {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s %s\t%s %s\n",
			b.Name, b.Code, b.Interval(),
			b.Prices.OneTime, t.Currency(),
			b.Prices.Subscription, t.Currency())
	}
	return tw.Flush()
}

// Summary is the one-line result shown to the customer.
func Summary(q *booking.Quote) string {
	msg := fmt.Sprintf("Booking cost: %d %s", q.Total, q.Currency)
	if q.Mode == rates.Subscription && q.Days > 1 {
		msg += fmt.Sprintf(" (for %d days)", q.Days)
	}
	return msg
}
