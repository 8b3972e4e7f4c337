// Package booking prices a booking against a rate table.
//
// A booking is walked band by band from its start to its end. Each step consumes the
// longest run of minutes that stays inside one band, bills it at the band's hourly
// price for the payment mode, and hands the next cursor back to the caller. The sum is
// multiplied by the day count for subscriptions and rounded once, half up.
package booking

import (
	"fmt"

	"booking-cost/core/clock"
	"booking-cost/core/rates"
	"booking-cost/internal/errors"
)

// Request is a validated booking
type Request struct {
	Start clock.TimeOfDay   `json:"start_time"`
	End   clock.TimeOfDay   `json:"end_time"`
	Mode  rates.PaymentMode `json:"payment_mode"`
	Days  int               `json:"days"`
}

// NewRequest validates raw form values. Times are normalized (an hour without minutes
// gets ":00") and must match HH:MM. Days applies to subscriptions only and must be
// within [1, MaxDays]; one-time bookings always count one day.
func NewRequest(start, end, mode string, days int) (Request, error) {
	from, err := parseField("start", start)
	if err != nil {
		return Request{}, err
	}
	to, err := parseField("end", end)
	if err != nil {
		return Request{}, err
	}

	pm, err := rates.ParsePaymentMode(mode)
	if err != nil {
		return Request{}, errors.InvalidArgument(err.Error()).WithContext("payment_mode", mode)
	}

	days, err = billedDays(pm, days)
	if err != nil {
		return Request{}, err
	}

	return Request{Start: from, End: to, Mode: pm, Days: days}, nil
}

// MaxDays bounds the subscription day count.
const MaxDays = 366

// billedDays returns the day multiplier for mode. One-time bookings always bill one day.
func billedDays(mode rates.PaymentMode, days int) (int, error) {
	if mode != rates.Subscription {
		return 1, nil
	}
	if days < 1 || days > MaxDays {
		return 0, errors.InvalidArgument(fmt.Sprintf("days must be between 1 and %d, got %d", MaxDays, days)).
			WithContext("days", days)
	}
	return days, nil
}

func parseField(field, raw string) (clock.TimeOfDay, error) {
	norm := clock.Normalize(raw)
	if !clock.Valid(norm) {
		return 0, errors.InvalidFormat(field, raw)
	}
	t, err := clock.Parse(norm)
	if err != nil {
		return 0, errors.InvalidFormat(field, raw)
	}
	return t, nil
}
