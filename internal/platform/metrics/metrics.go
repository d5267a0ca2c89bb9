// Package metrics owns the prometheus registry and the collectors the service exports on /metrics
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"slopmeter/internal/platform/net/middleware"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "slopmeter"

var (
	registry = prometheus.NewRegistry()
	factory  = promauto.With(registry)

	latencyBuckets = []float64{0.005, 0.025, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60}

	// HTTPRequests counts finished requests by route pattern
	HTTPRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status",
	}, []string{"route", "method", "status"})

	// HTTPDuration observes request latency in seconds
	HTTPDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route and method",
		Buckets:   latencyBuckets,
	}, []string{"route", "method"})

	// Admissions counts admission decisions by outcome
	Admissions = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admission_total",
		Help:      "Admission decisions by outcome",
	}, []string{"outcome"})

	// InferenceDuration observes inference calls by outcome (ok, error, timeout, open)
	InferenceDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "inference_duration_seconds",
		Help:      "Inference endpoint latency by outcome",
		Buckets:   latencyBuckets,
	}, []string{"outcome"})

	// BreakerState is 0 closed, 1 half-open, 2 open
	BreakerState = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "inference_breaker_state",
		Help:      "Inference circuit breaker state: 0 closed, 1 half-open, 2 open",
	})

	// Submissions counts insertIfAbsent results by whether the row already existed
	Submissions = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_total",
		Help:      "Stored submissions by question and duplicate flag",
	}, []string{"question", "duplicate"})
)

func init() {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Registry exposes the registry for tests and extra collectors
func Registry() *prometheus.Registry { return registry }

// Handler serves the registry in the prometheus exposition format
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
}

// Middleware records HTTPRequests and HTTPDuration once the route is resolved
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := middleware.RoutePattern(r)
		HTTPRequests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		HTTPDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}
