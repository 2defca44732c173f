package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recruitment_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "recruitment_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// FormSubmissions counts form page submissions by page and outcome.
	FormSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recruitment_form_submissions_total",
		Help: "Form page submissions by page and outcome",
	}, []string{"page", "outcome"})

	// PagePurges counts purge-before-render runs by page.
	PagePurges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recruitment_page_purges_total",
		Help: "Per-applicant purges run when a form page is rendered",
	}, []string{"page"})

	// UploadedFiles counts stored files by form field.
	UploadedFiles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recruitment_uploaded_files_total",
		Help: "Uploaded files stored by form field",
	}, []string{"field"})

	// UploadBytes records the size of stored uploads.
	UploadBytes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "recruitment_upload_bytes",
		Help:    "Size of stored uploads in bytes",
		Buckets: prometheus.ExponentialBuckets(16*1024, 4, 7),
	})

	// AuthEvents counts authentication events by kind and outcome.
	AuthEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recruitment_auth_events_total",
		Help: "Signup, login, logout and password reset events",
	}, []string{"event", "outcome"})

	// ApplicationsSubmitted counts final submissions.
	ApplicationsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recruitment_applications_submitted_total",
		Help: "Applications that reached the final submit step",
	})

	// SummaryCacheResults counts print summary cache hits and misses.
	SummaryCacheResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recruitment_summary_cache_results_total",
		Help: "Print summary cache lookups by result",
	}, []string{"result"})

	// MailDeliveries counts outbound mail attempts by driver and outcome.
	MailDeliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recruitment_mail_deliveries_total",
		Help: "Outbound mail attempts by driver and outcome",
	}, []string{"driver", "outcome"})
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeInvalid = "invalid"
)

// OutcomeOf maps an error to an outcome label.
func OutcomeOf(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}

// PageLabel renders a page number as a metric label.
func PageLabel(page int) string {
	return strconv.Itoa(page)
}

// DatabaseMetrics records query latency for a repository.
type DatabaseMetrics struct{}

// NewDatabaseMetrics returns a new DatabaseMetrics instance.
func NewDatabaseMetrics() *DatabaseMetrics {
	return &DatabaseMetrics{}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation, table string, start time.Time) {
	latency := time.Since(start).Seconds()
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(latency)
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, table, start)
	}
}
