package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "glosaguard_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "glosaguard_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "glosaguard_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	// Validation metrics
	validationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "glosaguard_validations_total",
			Help: "Total number of guide validations",
		},
		[]string{"source", "valid", "risk_level"},
	)

	validationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "glosaguard_validation_duration_seconds",
			Help:    "Guide parse and validation duration in seconds",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5},
		},
		[]string{"source"},
	)

	findingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "glosaguard_findings_total",
			Help: "Total number of validation findings produced",
		},
		[]string{"category", "status"},
	)

	riskScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "glosaguard_risk_score",
			Help:    "Distribution of computed glosa risk scores",
			Buckets: []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)

	submissionStatusChanged = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "glosaguard_submission_status_changed_total",
			Help: "Total number of submission status changes",
		},
		[]string{"from_status", "to_status"},
	)

	// Database metrics
	dbQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "glosaguard_db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation"},
	)
)

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request count, latency and in-flight requests.
// Paths are labelled with the matched route template to keep cardinality bounded.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// --- Business metric helpers ---

// RecordValidation records one parse+validate run and its outcome.
func RecordValidation(source string, valid bool, riskLevel string, score int, duration time.Duration) {
	validationsTotal.WithLabelValues(source, strconv.FormatBool(valid), riskLevel).Inc()
	validationDuration.WithLabelValues(source).Observe(duration.Seconds())
	riskScore.Observe(float64(score))
}

// RecordFinding records a single finding by category and status.
func RecordFinding(category, status string) {
	findingsTotal.WithLabelValues(category, status).Inc()
}

// RecordSubmissionStatusChange records a submission status transition
func RecordSubmissionStatusChange(fromStatus, toStatus string) {
	submissionStatusChanged.WithLabelValues(fromStatus, toStatus).Inc()
}

// RecordDBQuery records a database query duration
func RecordDBQuery(operation string, duration time.Duration) {
	dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
