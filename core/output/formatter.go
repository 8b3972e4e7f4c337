// Package output renders quotes and rate tables for people and machines.
package output

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"booking-cost/core/booking"
	"booking-cost/core/rates"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Options tune rendering
type Options struct {
	// ShowBreakdown prints per-band segments before the total
	ShowBreakdown bool
}

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// RenderQuote writes a priced booking
	RenderQuote(w io.Writer, q *booking.Quote, opts Options) error

	// RenderTable writes a rate table
	RenderTable(w io.Writer, t *rates.Table) error
}

// Registry manages formatter registration
type Registry struct {
	mu         sync.RWMutex
	formatters map[Format]Formatter
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{formatters: make(map[Format]Formatter)}
}

// Register adds a formatter to the registry
func (r *Registry) Register(f Formatter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.formatters[f.Format()]; exists {
		return fmt.Errorf("formatter %q already registered", f.Format())
	}
	r.formatters[f.Format()] = f
	return nil
}

// Get returns the formatter for a format
func (r *Registry) Get(format Format) (Formatter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.formatters[format]
	return f, ok
}

// Formats lists registered formats in name order
func (r *Registry) Formats() []Format {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Format, 0, len(r.formatters))
	for f := range r.formatters {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

var defaultRegistry = func() *Registry {
	r := NewRegistry()
	_ = r.Register(&CLIFormatter{})
	_ = r.Register(&JSONFormatter{Indent: "  "})
	return r
}()

// Lookup returns a built-in formatter by name
func Lookup(name string) (Formatter, error) {
	f, ok := defaultRegistry.Get(Format(name))
	if !ok {
		return nil, fmt.Errorf("unknown output format %q (want one of %v)", name, defaultRegistry.Formats())
	}
	return f, nil
}
