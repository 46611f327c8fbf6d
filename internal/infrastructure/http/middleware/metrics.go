package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "projectdb_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	projectsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "projectdb_projects_created_total",
			Help: "Total projects created",
		},
	)
	tablesCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "projectdb_tables_created_total",
			Help: "Total tables created by outcome",
		},
		[]string{"success"},
	)
)

// PrometheusMiddleware records request duration, labelled by route pattern so ids do not explode cardinality.
func PrometheusMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		duration := time.Since(start).Seconds()
		status := strconv.Itoa(ww.Status())
		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}
		if path == "" {
			path = "/"
		}
		httpRequestDuration.WithLabelValues(r.Method, path, status).Observe(duration)
	})
}

// RecordProjectCreated counts a created project.
func RecordProjectCreated() {
	projectsCreated.Inc()
}

// RecordTableCreated counts a table creation attempt.
func RecordTableCreated(success bool) {
	tablesCreated.WithLabelValues(strconv.FormatBool(success)).Inc()
}
