package booking

import (
	"math"

	"github.com/shopspring/decimal"

	"booking-cost/core/clock"
	"booking-cost/core/rates"
	"booking-cost/internal/errors"
)

// Quote is a priced booking with its per-band breakdown
type Quote struct {
	Request

	// Segments are the billed runs in booking order
	Segments []Segment `json:"segments,omitempty"`

	// Minutes is the booked length of one day
	Minutes int `json:"minutes"`

	// Overnight is set when the booking crosses midnight
	Overnight bool `json:"overnight"`

	// Subtotal is the price of one day before rounding
	Subtotal decimal.Decimal `json:"subtotal"`

	// Total is Subtotal * Days rounded half up
	Total int64 `json:"total"`

	// Currency of Subtotal and Total
	Currency string `json:"currency"`
}

// Calculator prices bookings against a fixed table. It holds no mutable state and is
// safe for concurrent use.
type Calculator struct {
	table *rates.Table
	step  StepFunc
}

// NewCalculator creates a calculator for table, or for the default table when nil.
func NewCalculator(table *rates.Table) *Calculator {
	if table == nil {
		table = rates.Default()
	}
	return &Calculator{
		table: table,
		step:  Step,
	}
}

var defaultCalculator = NewCalculator(nil)

var maxTotal = decimal.NewFromInt(math.MaxInt64)

// ComputeCost prices a booking against the default table.
func ComputeCost(start, end, mode string, days int) (int64, error) {
	return defaultCalculator.ComputeCost(start, end, mode, days)
}

// Table returns the table the calculator prices against.
func (c *Calculator) Table() *rates.Table {
	return c.table
}

// ComputeCost validates raw form values and returns the rounded cost.
func (c *Calculator) ComputeCost(start, end, mode string, days int) (int64, error) {
	q, err := c.QuoteInput(start, end, mode, days)
	if err != nil {
		return 0, err
	}
	return q.Total, nil
}

// QuoteInput validates raw form values and prices them.
func (c *Calculator) QuoteInput(start, end, mode string, days int) (*Quote, error) {
	req, err := NewRequest(start, end, mode, days)
	if err != nil {
		return nil, err
	}
	return c.Quote(req)
}

// Quote prices a validated request.
func (c *Calculator) Quote(req Request) (*Quote, error) {
	from, to, err := c.span(req)
	if err != nil {
		return nil, err
	}
	days, err := billedDays(req.Mode, req.Days)
	if err != nil {
		return nil, err
	}

	q := &Quote{
		Request:   req,
		Minutes:   to - from,
		Overnight: to > clock.MinutesPerDay,
		Currency:  c.table.Currency(),
	}
	q.Days = days

	weighted := decimal.Zero
	for cursor := from; cursor < to; {
		seg, next, err := c.step(c.table, req.Mode, cursor, to)
		if err != nil {
			return nil, err
		}
		if next <= cursor {
			return nil, errors.Internal("rate walk did not advance", nil).WithContext("minute", cursor)
		}
		q.Segments = append(q.Segments, seg)
		weighted = weighted.Add(seg.weighted)
		cursor = next
	}

	q.Subtotal = weighted.Div(minutesPerHour).Round(2)
	total := weighted.Mul(decimal.NewFromInt(int64(days))).Div(minutesPerHour).Round(0)
	if total.GreaterThan(maxTotal) {
		return nil, errors.InvalidArgument("booking cost exceeds the supported range").
			WithContext("total", total.String())
	}
	q.Total = total.IntPart()
	return q, nil
}

// span places the request on the booking timeline. An end of 00:00 means the
// following midnight. An end at or before the start is accepted only when the whole
// booking sits inside the wrapping band, e.g. 23:00-02:00 in the night band; the end
// then moves to the next day.
func (c *Calculator) span(req Request) (int, int, error) {
	from, to := int(req.Start), int(req.End)
	if req.End == clock.Midnight && from > 0 {
		to = clock.MinutesPerDay
	}
	if from < to {
		return from, to, nil
	}

	if w, ok := c.table.Wrapping(); ok && req.Start >= w.Start && req.End <= w.End {
		return from, to + clock.MinutesPerDay, nil
	}
	return 0, 0, errors.InvalidInterval(req.Start.String(), req.End.String())
}
