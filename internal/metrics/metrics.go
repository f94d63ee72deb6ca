package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vikinghammer_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vikinghammer_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	EnrollmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vikinghammer_enrollments_total",
			Help: "Total number of class enrollment attempts",
		},
		[]string{"result"},
	)

	CancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vikinghammer_enrollment_cancellations_total",
			Help: "Total number of enrollment cancellations",
		},
	)

	CheckInsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vikinghammer_checkins_total",
			Help: "Total number of check-ins",
		},
		[]string{"kind"},
	)

	ScheduleDayFallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vikinghammer_schedule_day_fallbacks_total",
			Help: "Times a free-text weekday failed to parse and fell back to Monday",
		},
	)

	ActivityLogEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "vikinghammer_activity_log_entries",
			Help: "Current number of entries held by the activity log",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// RecordEnrollment counts enroll attempts by outcome: "confirmed",
// "duplicate", "capacity_exceeded", "class_unavailable" or "error".
func RecordEnrollment(result string) {
	EnrollmentsTotal.WithLabelValues(result).Inc()
}

func RecordCancellation() {
	CancellationsTotal.Inc()
}

// RecordCheckIn counts check-ins by kind: "door" or "class".
func RecordCheckIn(kind string) {
	CheckInsTotal.WithLabelValues(kind).Inc()
}

func RecordScheduleDayFallback() {
	ScheduleDayFallbacksTotal.Inc()
}

func SetActivityLogEntries(n int) {
	ActivityLogEntries.Set(float64(n))
}
