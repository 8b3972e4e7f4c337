package api

import (
	"booking-cost/core/booking"
	"booking-cost/core/rates"
)

// QuoteRequest is the body of POST /quote
type QuoteRequest struct {
	// StartTime is "HH:MM"; a bare hour gets ":00"
	StartTime string `json:"start_time" validate:"required"`

	// EndTime is "HH:MM"; "00:00" closes the day
	EndTime string `json:"end_time" validate:"required"`

	// PaymentMode is one_time or subscription
	PaymentMode string `json:"payment_mode" validate:"required"`

	// Days multiplies subscription bookings; defaults to 1, at most booking.MaxDays
	Days int `json:"days" validate:"omitempty,min=1,max=366"`

	// Breakdown includes per-band segments; defaults to true
	Breakdown *bool `json:"breakdown,omitempty"`
}

// QuoteResponse is the body of a successful POST /quote
type QuoteResponse struct {
	ID      string         `json:"id"`
	Quote   *booking.Quote `json:"quote"`
	Summary string         `json:"summary"`
}

// RatesResponse is the body of GET /rates
type RatesResponse struct {
	Currency string       `json:"currency"`
	Bands    []rates.Band `json:"bands"`
}

// ErrorResponse wraps every failure
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody describes a failure
type ErrorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
