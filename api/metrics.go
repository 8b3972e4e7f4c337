package api

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"booking-cost/core/rates"
)

// metrics is per server so tests do not share the default registry.
type metrics struct {
	registry *prometheus.Registry
	quotes   *prometheus.CounterVec
	duration prometheus.Histogram
	limited  prometheus.Counter
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		quotes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "booking_cost",
			Name:      "quotes_total",
			Help:      "Quote requests by payment mode and outcome.",
		}, []string{"mode", "outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "booking_cost",
			Name:      "quote_duration_seconds",
			Help:      "Time spent pricing a quote request.",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 4, 8),
		}),
		limited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "booking_cost",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter.",
		}),
	}
	m.registry.MustRegister(m.quotes, m.duration, m.limited)
	return m
}

const modeUnknown = "unknown"

// modeLabel keeps the mode label to the known payment modes.
func modeLabel(raw string) string {
	mode, err := rates.ParsePaymentMode(raw)
	if err != nil {
		return modeUnknown
	}
	return string(mode)
}

func (m *metrics) observeQuote(mode, outcome string, started time.Time) {
	m.quotes.WithLabelValues(mode, outcome).Inc()
	m.duration.Observe(time.Since(started).Seconds())
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
