package booking

import (
	"github.com/shopspring/decimal"

	"booking-cost/core/clock"
	"booking-cost/core/rates"
	"booking-cost/internal/errors"
)

var minutesPerHour = decimal.NewFromInt(60)

// Segment is a run of booked minutes inside a single band
type Segment struct {
	// Band is the name of the band billed
	Band string `json:"band"`

	// Code is the band's tariff code
	Code int `json:"code"`

	// From and To bound the run on the clock; To is exclusive
	From clock.TimeOfDay `json:"from"`
	To   clock.TimeOfDay `json:"to"`

	// Minutes is the length of the run
	Minutes int `json:"minutes"`

	// Rate is the hourly price applied
	Rate decimal.Decimal `json:"rate"`

	// Amount is Rate * Minutes / 60, rounded to cents for display
	Amount decimal.Decimal `json:"amount"`

	// weighted is Rate * Minutes, kept exact for the total
	weighted decimal.Decimal
}

// Hours returns the run length in hours.
func (s Segment) Hours() decimal.Decimal {
	return decimal.NewFromInt(int64(s.Minutes)).Div(minutesPerHour)
}

// StepFunc consumes one segment of a booking walk.
type StepFunc func(table *rates.Table, mode rates.PaymentMode, cursor, end int) (Segment, int, error)

// Step bills the run of minutes that starts at cursor and stays inside one band,
// stopping no later than end. It returns the segment and the next cursor.
//
// cursor and end count minutes from the booking's first midnight, so 1440 is the
// following midnight. The band is looked up on cursor's minute of the day; a wrapping
// band entered before midnight is cut at midnight and the walk resumes at 00:00.
func Step(table *rates.Table, mode rates.PaymentMode, cursor, end int) (Segment, int, error) {
	m := clock.TimeOfDay(cursor % clock.MinutesPerDay)
	dayStart := cursor - int(m)

	band, ok := table.Lookup(m)
	if !ok {
		return Segment{}, cursor, errors.OutsideCoverage(int(m))
	}
	price, ok := band.Prices.For(mode)
	if !ok {
		return Segment{}, cursor, errors.InvalidArgument("unknown payment mode " + mode.String())
	}

	next := min(end, dayStart+band.Boundary(m))
	minutes := next - cursor
	weighted := price.Mul(decimal.NewFromInt(int64(minutes)))

	return Segment{
		Band:     band.Name,
		Code:     band.Code,
		From:     m,
		To:       clock.TimeOfDay(next % clock.MinutesPerDay),
		Minutes:  minutes,
		Rate:     price,
		Amount:   weighted.Div(minutesPerHour).Round(2),
		weighted: weighted,
	}, next, nil
}
