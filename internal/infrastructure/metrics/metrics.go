package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

const namespace = "memledger"

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transfer metrics
	TransfersCompleted   prometheus.Counter
	TransferFailures     *prometheus.CounterVec
	TransferDuration     prometheus.Histogram
	TransferAmount       prometheus.Histogram
	NotificationFailures prometheus.Counter

	// Account metrics
	AccountsCreated prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	HTTPInFlight prometheus.Gauge

	// Load shedding metrics
	RateLimitHits prometheus.Counter
	RequestsShed  *prometheus.CounterVec
}

// New creates all metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		TransfersCompleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transfers_completed_total",
			Help:      "Total number of committed transfers",
		}),
		TransferFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transfer_failures_total",
				Help:      "Total number of rejected transfers by reason",
			},
			[]string{"reason"},
		),
		TransferDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "transfer_duration_seconds",
			Help:      "Duration of transfer operations including notification delivery",
			Buckets:   prometheus.DefBuckets,
		}),
		TransferAmount: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "transfer_amount",
			Help:      "Transfer amounts",
			Buckets:   []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		NotificationFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transfer_notification_failures_total",
			Help:      "Total number of notifications that could not be delivered",
		}),

		AccountsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "accounts_created_total",
			Help:      "Total number of accounts created",
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
		HTTPInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		}),

		RateLimitHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limit_hits_total",
			Help:      "Total requests rejected by the per-client rate limiter",
		}),
		RequestsShed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_shed_total",
				Help:      "Total requests rejected because the in-flight limit was reached",
			},
			[]string{"route"},
		),
	}
}

// TransferCompleted records a committed transfer.
func (m *Metrics) TransferCompleted(amount decimal.Decimal, elapsed time.Duration) {
	m.TransfersCompleted.Inc()
	m.TransferDuration.Observe(elapsed.Seconds())
	m.TransferAmount.Observe(amount.InexactFloat64())
}

// TransferFailed records a rejected transfer.
func (m *Metrics) TransferFailed(reason string) {
	m.TransferFailures.WithLabelValues(reason).Inc()
}

// NotificationFailed records an undelivered notification.
func (m *Metrics) NotificationFailed() {
	m.NotificationFailures.Inc()
}

// AccountCreated records a new account.
func (m *Metrics) AccountCreated() {
	m.AccountsCreated.Inc()
}

// RequestStarted tracks an in-flight HTTP request.
func (m *Metrics) RequestStarted() {
	m.HTTPInFlight.Inc()
}

// RequestFinished records a completed HTTP request.
func (m *Metrics) RequestFinished(method, path string, status int, elapsed time.Duration) {
	m.HTTPInFlight.Dec()
	m.HTTPRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// RateLimited records a request rejected by the rate limiter.
func (m *Metrics) RateLimited() {
	m.RateLimitHits.Inc()
}

// Shed records a request rejected by a concurrency limiter.
func (m *Metrics) Shed(route string) {
	m.RequestsShed.WithLabelValues(route).Inc()
}
