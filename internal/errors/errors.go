// Package errors provides the typed error used across booking-cost.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Type identifies the category of error
type Type string

const (
	// TypeInvalidFormat indicates a time string that fails the HH:MM pattern
	TypeInvalidFormat Type = "INVALID_FORMAT"

	// TypeInvalidInterval indicates a start that is not before the end
	TypeInvalidInterval Type = "INVALID_INTERVAL"

	// TypeOutsideCoverage indicates a minute no rate band covers
	TypeOutsideCoverage Type = "OUTSIDE_COVERAGE"

	// TypeInvalidArgument indicates an unknown payment mode or a bad day count
	TypeInvalidArgument Type = "INVALID_ARGUMENT"

	// TypeParsing indicates a rate file that cannot be parsed
	TypeParsing Type = "PARSING_ERROR"

	// TypeConfig indicates a configuration error
	TypeConfig Type = "CONFIG_ERROR"

	// TypeInternal indicates an internal error
	TypeInternal Type = "INTERNAL_ERROR"
)

// Error is a domain error with context
type Error struct {
	Type    Type           `json:"type"`
	Message string         `json:"message"`
	Cause   error          `json:"-"`
	Context map[string]any `json:"context,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same Type.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Type == e.Type
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...any) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// As finds the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsType checks if any error in err's chain is of type t
func IsType(err error, t Type) bool {
	for err != nil {
		e, ok := As(err)
		if !ok {
			return false
		}
		if e.Type == t {
			return true
		}
		err = e.Cause
	}
	return false
}

// TypeOf returns the Type of the first *Error in err's chain, or TypeInternal.
func TypeOf(err error) Type {
	if e, ok := As(err); ok {
		return e.Type
	}
	return TypeInternal
}

// InvalidFormat creates an error for a malformed time field
func InvalidFormat(field, value string) *Error {
	return Newf(TypeInvalidFormat, "invalid %s time format (use HH:MM)", field).
		WithContext("field", field).
		WithContext("value", value)
}

// InvalidInterval creates an error for a start that is not before the end
func InvalidInterval(start, end string) *Error {
	return New(TypeInvalidInterval, "invalid time interval").
		WithContext("start", start).
		WithContext("end", end)
}

// OutsideCoverage creates an error for a minute that no band covers
func OutsideCoverage(minute int) *Error {
	return New(TypeOutsideCoverage, "part of the booking is outside working hours").
		WithContext("minute", minute)
}

// InvalidArgument creates an argument error
func InvalidArgument(message string) *Error {
	return New(TypeInvalidArgument, message)
}

// Parsing creates a parsing error
func Parsing(message string, cause error) *Error {
	return Wrap(TypeParsing, message, cause)
}

// Config creates a configuration error
func Config(message string, cause error) *Error {
	return Wrap(TypeConfig, message, cause)
}

// Internal creates an internal error
func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}
