// Package rates holds the daily time bands and their hourly prices.
package rates

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"booking-cost/core/clock"
)

// PaymentMode selects which price column of a band applies
type PaymentMode string

const (
	// OneTime is a single visit paid at the one-time rate
	OneTime PaymentMode = "one_time"

	// Subscription is paid at the subscription rate times a day count
	Subscription PaymentMode = "subscription"
)

// modeAliases maps accepted spellings to modes.
var modeAliases = map[string]PaymentMode{
	"one_time":     OneTime,
	"one-time":     OneTime,
	"onetime":      OneTime,
	"разовое":      OneTime,
	"subscription": Subscription,
	"абонемент":    Subscription,
}

// ParsePaymentMode parses a payment mode case-insensitively.
func ParsePaymentMode(s string) (PaymentMode, error) {
	m, ok := modeAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("unknown payment mode %q", s)
	}
	return m, nil
}

// Modes returns every payment mode in display order.
func Modes() []PaymentMode {
	return []PaymentMode{OneTime, Subscription}
}

// String returns the string representation
func (m PaymentMode) String() string {
	return string(m)
}

// Prices holds the hourly price of a band for each payment mode
type Prices struct {
	OneTime      decimal.Decimal `json:"one_time"`
	Subscription decimal.Decimal `json:"subscription"`
}

// For returns the hourly price for mode.
func (p Prices) For(mode PaymentMode) (decimal.Decimal, bool) {
	switch mode {
	case OneTime:
		return p.OneTime, true
	case Subscription:
		return p.Subscription, true
	default:
		return decimal.Zero, false
	}
}

// Band is a half-open interval [Start, End) of the day with hourly prices.
// A band with Start > End wraps through midnight.
type Band struct {
	// Name identifies the band ("day", "evening", "night")
	Name string `json:"name"`

	// Code is the tariff code printed on receipts
	Code int `json:"code"`

	// Start is the first minute of the band
	Start clock.TimeOfDay `json:"start"`

	// End is the first minute after the band
	End clock.TimeOfDay `json:"end"`

	// Prices are per hour
	Prices Prices `json:"prices"`
}

// Wraps reports whether the band crosses midnight.
func (b Band) Wraps() bool {
	return b.Start > b.End
}

// Covers reports whether minute m of the day lies in the band.
func (b Band) Covers(m clock.TimeOfDay) bool {
	if b.Wraps() {
		return m >= b.Start || m < b.End
	}
	return m >= b.Start && m < b.End
}

// Boundary returns where the band stops when entered at minute m, on the
// minute-of-day scale. A wrapping band entered before midnight stops at
// MinutesPerDay so the walk is split at the day boundary.
func (b Band) Boundary(m clock.TimeOfDay) int {
	if b.Wraps() && m >= b.Start {
		return clock.MinutesPerDay
	}
	return int(b.End)
}

// Interval renders the band as "HH:MM-HH:MM".
func (b Band) Interval() string {
	return b.Start.String() + "-" + b.End.String()
}
