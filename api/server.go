// Package api is the HTTP front of the calculator.
// It decodes and validates requests, calls the calculator and serializes the result;
// it never prices anything itself.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"booking-cost/core/booking"
)

// Options configure a Server
type Options struct {
	// Version is reported by /health and /version
	Version string

	// Logger defaults to a no-op logger
	Logger *zap.Logger

	// RateLimit is the sustained requests per second for pricing routes; 0 disables
	RateLimit float64

	// Burst is the limiter bucket size
	Burst int
}

// Server is the API server
type Server struct {
	calc     *booking.Calculator
	router   chi.Router
	validate *validator.Validate
	limiter  *rate.Limiter
	metrics  *metrics
	log      *zap.Logger
	version  string
}

// NewServer creates a server around calc.
func NewServer(calc *booking.Calculator, opts Options) *Server {
	if calc == nil {
		calc = booking.NewCalculator(nil)
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	s := &Server{
		calc:     calc,
		router:   chi.NewRouter(),
		validate: validator.New(),
		metrics:  newMetrics(),
		log:      log,
		version:  opts.Version,
	}
	if opts.RateLimit > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), max(opts.Burst, 1))
	}

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.Use(
		middleware.RequestID,
		middleware.Recoverer,
		s.logRequests,
	)

	s.router.Group(func(r chi.Router) {
		r.Use(s.rateLimit)
		r.Post("/quote", s.handleQuote)
		r.Get("/rates", s.handleRates)
	})

	s.router.Get("/health", s.handleHealth)
	s.router.Get("/version", s.handleVersion)
	s.router.Handle("/metrics", s.metrics.handler())
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// HTTPServer wraps the handler with listen address and timeouts.
func (s *Server) HTTPServer(addr string, readTimeout, writeTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readTimeout,
		WriteTimeout:      writeTimeout,
	}
}
