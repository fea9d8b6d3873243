// Package metrics holds the Prometheus collectors of both sites.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	// HTTPRequestsTotal counts requests by method, route and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsnotes_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"app", "method", "route", "status"},
	)

	// HTTPRequestDuration measures request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "newsnotes_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"app", "method", "route"},
	)
)

// Content metrics
var (
	// ContentWritesTotal counts persisted mutations by kind (comment, note, user) and op
	ContentWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsnotes_content_writes_total",
			Help: "Total number of persisted content mutations",
		},
		[]string{"kind", "op"},
	)

	// AccessDeniedTotal counts refused operations by reason (unauthenticated, not_found)
	AccessDeniedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsnotes_access_denied_total",
			Help: "Total number of operations refused by the access policy",
		},
		[]string{"kind", "op", "reason"},
	)

	// ValidationFailuresTotal counts rejected form submissions by field
	ValidationFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsnotes_validation_failures_total",
			Help: "Total number of rejected form fields",
		},
		[]string{"kind", "field"},
	)

	// ArticlesImportedTotal counts imported articles by outcome (inserted, failed)
	ArticlesImportedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsnotes_articles_imported_total",
			Help: "Total number of article records processed by imports",
		},
		[]string{"outcome"},
	)
)

// RecordRequest records one served HTTP request
func RecordRequest(app, method, route string, status int, took time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestsTotal.WithLabelValues(app, method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(app, method, route).Observe(took.Seconds())
}

// RecordWrite records a persisted create, edit or delete
func RecordWrite(kind, op string) {
	ContentWritesTotal.WithLabelValues(kind, op).Inc()
}

// RecordDenied records an operation refused by the access policy
func RecordDenied(kind, op, reason string) {
	AccessDeniedTotal.WithLabelValues(kind, op, reason).Inc()
}

// RecordValidationFailure records each rejected field of a form
func RecordValidationFailure(kind string, fields map[string][]string) {
	for field := range fields {
		ValidationFailuresTotal.WithLabelValues(kind, field).Inc()
	}
}
