package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heather92115/palabras/internal/study"
)

// Metrics holds all Prometheus metrics for palabras
type Metrics struct {
	registry *prometheus.Registry

	// Study metrics
	AttemptsGraded  *prometheus.CounterVec
	AttemptScore    prometheus.Histogram
	WellKnownGraded prometheus.Counter
	BatchesServed   prometheus.Counter
	BatchSize       prometheus.Histogram

	// Reminder metrics
	RemindersSent *prometheus.CounterVec

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewMetrics creates all metrics on a fresh registry, including Go runtime collectors
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,

		AttemptsGraded: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "palabras_attempts_graded_total",
				Help: "Total number of graded answers by outcome",
			},
			[]string{"outcome"},
		),
		AttemptScore: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "palabras_attempt_score",
				Help:    "Match score of graded answers, 0 is perfect",
				Buckets: prometheus.LinearBuckets(0, 1, 11),
			},
		),
		WellKnownGraded: f.NewCounter(
			prometheus.CounterOpts{
				Name: "palabras_well_known_attempts_total",
				Help: "Graded answers whose vocab is well known afterwards",
			},
		),
		BatchesServed: f.NewCounter(
			prometheus.CounterOpts{
				Name: "palabras_batches_served_total",
				Help: "Total number of study batches served",
			},
		),
		BatchSize: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "palabras_batch_size",
				Help:    "Number of vocab in served study batches",
				Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
			},
		),
		RemindersSent: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "palabras_reminders_sent_total",
				Help: "Study reminders by delivery result",
			},
			[]string{"success"},
		),
		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "palabras_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "palabras_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

// Outcome buckets a match score the same way the user facing message does
func Outcome(score int) string {
	switch {
	case score == 0:
		return "perfect"
	case score <= study.CloseDistance:
		return "close"
	default:
		return "miss"
	}
}

// AttemptGraded records one graded answer
func (m *Metrics) AttemptGraded(score int, wellKnown bool) {
	m.AttemptsGraded.WithLabelValues(Outcome(score)).Inc()
	m.AttemptScore.Observe(float64(score))
	if wellKnown {
		m.WellKnownGraded.Inc()
	}
}

// BatchServed records a served study batch
func (m *Metrics) BatchServed(size int) {
	m.BatchesServed.Inc()
	m.BatchSize.Observe(float64(size))
}

// RecordReminder records a reminder delivery attempt
func (m *Metrics) RecordReminder(success bool) {
	m.RemindersSent.WithLabelValues(strconv.FormatBool(success)).Inc()
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, route string, status int, seconds float64) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(seconds)
}

var _ study.Observer = (*Metrics)(nil)

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
