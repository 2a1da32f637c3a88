// Package metrics exposes Prometheus instrumentation for the intake API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	TurnsTotal       *prometheus.CounterVec
	ReportsGenerated prometheus.Counter
	LLMFailures      prometheus.Counter
}

func NewCollector(serviceName string) *Collector {
	return &Collector{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, path, and status code.",
		}, []string{"method", "path", "status"}),

		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency distribution.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		}, []string{"method", "path", "status"}),

		TurnsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "intake",
			Name:      "turns_total",
			Help:      "Total chat turns processed, labelled by the stage they arrived in.",
		}, []string{"stage"}),

		ReportsGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "intake",
			Name:      "reports_generated_total",
			Help:      "Total PDF reports generated.",
		}),

		LLMFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "intake",
			Name:      "llm_failures_total",
			Help:      "Total failed calls to the language model API.",
		}),
	}
}

// Handler returns the /metrics scrape endpoint.
func (c *Collector) Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request counts and latency per route.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		status := strconv.Itoa(sw.status)
		c.RequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		c.RequestDuration.WithLabelValues(r.Method, r.URL.Path, status).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
