package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iho/expensetracker/internal/domain"
)

const namespace = "expensetracker"

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Entry metrics
	EntryMutations *prometheus.CounterVec

	// Rate metrics
	RateRefreshes       *prometheus.CounterVec
	RateRefreshDuration prometheus.Histogram
	RateTableUpdated    prometheus.Gauge

	// API metrics
	HTTPRequests         *prometheus.CounterVec
	HTTPDuration         *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Rate limiting metrics
	RateLimitHits prometheus.Counter

	// Idempotency metrics
	IdempotentReplays prometheus.Counter
}

// New creates and registers all Prometheus metrics on the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates all metrics and registers them on reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		EntryMutations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "entry_mutations_total",
				Help:      "Total entry mutations by variant, operation and outcome",
			},
			[]string{"variant", "op", "status"},
		),

		RateRefreshes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_refreshes_total",
				Help:      "Total exchange-rate refresh attempts by outcome",
			},
			[]string{"status"},
		),
		RateRefreshDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rate_refresh_duration_seconds",
			Help:      "Duration of exchange-rate fetches",
			Buckets:   prometheus.DefBuckets,
		}),
		RateTableUpdated: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rate_table_updated_timestamp_seconds",
			Help:      "Unix time of the last successful rate refresh",
		}),

		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		}),

		RateLimitHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limit_hits_total",
			Help:      "Total requests rejected by the rate limiter",
		}),

		IdempotentReplays: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "idempotent_replays_total",
			Help:      "Total responses served from the idempotency store",
		}),
	}
}

// EntryMutation records the outcome of an entry store mutation.
func (m *Metrics) EntryMutation(variant domain.Variant, op string, err error) {
	m.EntryMutations.WithLabelValues(string(variant), op, status(err)).Inc()
}

// RateRefresh records the outcome of a rate refresh.
func (m *Metrics) RateRefresh(err error, duration time.Duration) {
	m.RateRefreshes.WithLabelValues(status(err)).Inc()
	m.RateRefreshDuration.Observe(duration.Seconds())
	if err == nil {
		m.RateTableUpdated.SetToCurrentTime()
	}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
