package rates

import (
	"fmt"

	"github.com/shopspring/decimal"

	"booking-cost/core/clock"
	"booking-cost/internal/errors"
)

// DefaultCurrency is the currency of the compiled-in table
const DefaultCurrency = "RUB"

// Table is an ordered, read-only set of bands
type Table struct {
	currency string
	bands    []Band
}

// NewTable builds a table from bands in order. It does not validate; call Validate.
func NewTable(currency string, bands ...Band) *Table {
	if currency == "" {
		currency = DefaultCurrency
	}
	return &Table{
		currency: currency,
		bands:    append([]Band(nil), bands...),
	}
}

var defaultTable = NewTable(DefaultCurrency,
	Band{
		Name:  "day",
		Code:  5,
		Start: clock.MustParse("08:00"),
		End:   clock.MustParse("18:00"),
		Prices: Prices{
			OneTime:      decimal.NewFromInt(2500),
			Subscription: decimal.NewFromInt(2000),
		},
	},
	Band{
		Name:  "evening",
		Code:  2,
		Start: clock.MustParse("18:00"),
		End:   clock.MustParse("22:00"),
		Prices: Prices{
			OneTime:      decimal.NewFromInt(2800),
			Subscription: decimal.NewFromInt(2500),
		},
	},
	Band{
		Name:  "night",
		Code:  1,
		Start: clock.MustParse("22:00"),
		End:   clock.MustParse("08:00"),
		Prices: Prices{
			OneTime:      decimal.NewFromInt(2200),
			Subscription: decimal.NewFromInt(1800),
		},
	},
)

// Default returns the built-in weekday table.
func Default() *Table {
	return defaultTable
}

// Currency returns the currency prices are quoted in.
func (t *Table) Currency() string {
	return t.currency
}

// Bands returns a copy of the bands in table order.
func (t *Table) Bands() []Band {
	return append([]Band(nil), t.bands...)
}

// Len returns the number of bands.
func (t *Table) Len() int {
	return len(t.bands)
}

// Lookup returns the band covering minute m. Wrapping bands are tried first, then
// the others in table order. ok is false only for a table with a gap at m.
func (t *Table) Lookup(m clock.TimeOfDay) (band Band, ok bool) {
	for _, b := range t.bands {
		if b.Wraps() && b.Covers(m) {
			return b, true
		}
	}
	for _, b := range t.bands {
		if !b.Wraps() && b.Covers(m) {
			return b, true
		}
	}
	return Band{}, false
}

// Wrapping returns the band that runs past midnight into the next day, if any. A band
// that ends exactly at 00:00 does not.
func (t *Table) Wrapping() (Band, bool) {
	for _, b := range t.bands {
		if b.Wraps() && b.End != clock.Midnight {
			return b, true
		}
	}
	return Band{}, false
}

// Validate checks that the bands partition the day: every minute is covered exactly
// once, names are unique, boundaries are in range and prices are non-negative.
func (t *Table) Validate() error {
	if len(t.bands) == 0 {
		return errors.Config("rate table has no bands", nil)
	}

	seen := make(map[string]bool, len(t.bands))
	for _, b := range t.bands {
		if b.Name == "" {
			return errors.Config("rate band without a name", nil)
		}
		if seen[b.Name] {
			return errors.Config(fmt.Sprintf("duplicate rate band %q", b.Name), nil)
		}
		seen[b.Name] = true

		if b.Start < 0 || int(b.Start) >= clock.MinutesPerDay || b.End < 0 || int(b.End) >= clock.MinutesPerDay {
			return errors.Config(fmt.Sprintf("rate band %q has boundaries outside the day", b.Name), nil)
		}
		if b.Start == b.End {
			return errors.Config(fmt.Sprintf("rate band %q is empty", b.Name), nil)
		}
		for _, mode := range Modes() {
			p, _ := b.Prices.For(mode)
			if p.IsNegative() {
				return errors.Config(fmt.Sprintf("rate band %q has a negative %s price", b.Name, mode), nil)
			}
		}
	}

	var cover [clock.MinutesPerDay]int
	for _, b := range t.bands {
		for m := 0; m < clock.MinutesPerDay; m++ {
			if b.Covers(clock.TimeOfDay(m)) {
				cover[m]++
			}
		}
	}
	for m, n := range cover {
		switch {
		case n == 0:
			return errors.Config(fmt.Sprintf("no rate band covers %s", clock.TimeOfDay(m)), nil).
				WithContext("minute", m)
		case n > 1:
			return errors.Config(fmt.Sprintf("%d rate bands overlap at %s", n, clock.TimeOfDay(m)), nil).
				WithContext("minute", m)
		}
	}
	return nil
}
