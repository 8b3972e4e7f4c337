package output

import (
	"encoding/json"
	"io"

	"booking-cost/core/booking"
	"booking-cost/core/rates"
)

// JSONFormatter renders quotes and tables as JSON documents
type JSONFormatter struct {
	Indent string
}

// Format returns FormatJSON
func (f *JSONFormatter) Format() Format { return FormatJSON }

// RenderQuote writes the quote. Segments are dropped unless opts.ShowBreakdown.
func (f *JSONFormatter) RenderQuote(w io.Writer, q *booking.Quote, opts Options) error {
	out := *q
	if !opts.ShowBreakdown {
		out.Segments = nil
	}
	return f.encode(w, QuoteDocument{Quote: &out, Summary: Summary(q)})
}

// RenderTable writes the table with its currency.
func (f *JSONFormatter) RenderTable(w io.Writer, t *rates.Table) error {
	return f.encode(w, TableDocument{Currency: t.Currency(), Bands: t.Bands()})
}

func (f *JSONFormatter) encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", f.Indent)
	return enc.Encode(v)
}

// QuoteDocument is the JSON shape of a quote
type QuoteDocument struct {
	*booking.Quote
	Summary string `json:"summary"`
}

// TableDocument is the JSON shape of a rate table
type TableDocument struct {
	Currency string       `json:"currency"`
	Bands    []rates.Band `json:"bands"`
}
