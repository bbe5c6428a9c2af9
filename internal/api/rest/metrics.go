package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// requestMetrics instruments handlers with request counts and latency.
type requestMetrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newRequestMetrics() *requestMetrics {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "charges_api_requests_total",
		Help: "Total HTTP requests handled, by operation and status code.",
	}, []string{"operation", "status"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "charges_api_request_duration_seconds",
		Help:    "HTTP request latency, by operation.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	registry.MustRegister(requests, duration)

	return &requestMetrics{
		registry: registry,
		requests: requests,
		duration: duration,
	}
}

func (m *requestMetrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (m *requestMetrics) instrument(operation string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next(rec, r)

		m.requests.WithLabelValues(operation, strconv.Itoa(rec.status)).Inc()
		m.duration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}
