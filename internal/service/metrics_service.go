package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/sma-adp-console/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation for the console and
// provides lightweight snapshots for the state API.
type MetricsService struct {
	registry         *prometheus.Registry
	handler          http.Handler
	requestDuration  *prometheus.HistogramVec
	requestTotal     *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	upstreamTotal    *prometheus.CounterVec
	superseded       *prometheus.CounterVec
	pollRuns         *prometheus.CounterVec

	upstreamCount         uint64
	upstreamFailureCount  uint64
	upstreamDurationTotal uint64
	supersededCount       uint64
	pollCount             uint64
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of console HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of console HTTP requests",
	}, []string{"method", "path", "status"})

	upstreamDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "upstream_request_duration_seconds",
		Help:    "Duration of backend API calls in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "endpoint", "status"})

	upstreamTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_requests_total",
		Help: "Total number of backend API calls",
	}, []string{"method", "endpoint", "status"})

	superseded := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_superseded_responses_total",
		Help: "Responses discarded because a newer request for the same slice was issued",
	}, []string{"slice"})

	pollRuns := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "poller_runs_total",
		Help: "Poller ticks by poller and outcome",
	}, []string{"poller", "outcome"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, upstreamDuration, upstreamTotal, superseded, pollRuns, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:         registry,
		handler:          handler,
		requestDuration:  requestDuration,
		requestTotal:     requestTotal,
		upstreamDuration: upstreamDuration,
		upstreamTotal:    upstreamTotal,
		superseded:       superseded,
		pollRuns:         pollRuns,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records metrics for requests served by the console.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveUpstreamRequest records a backend call. Status 0 means the request
// never produced a response.
func (m *MetricsService) ObserveUpstreamRequest(method, endpoint string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.upstreamDuration.WithLabelValues(method, endpoint, labelStatus).Observe(duration.Seconds())
	m.upstreamTotal.WithLabelValues(method, endpoint, labelStatus).Inc()
	atomic.AddUint64(&m.upstreamCount, 1)
	atomic.AddUint64(&m.upstreamDurationTotal, uint64(duration.Nanoseconds()))
	if status == 0 || status >= http.StatusBadRequest {
		atomic.AddUint64(&m.upstreamFailureCount, 1)
	}
}

// ObserveSuperseded counts a stale response dropped by a store.
func (m *MetricsService) ObserveSuperseded(slice string) {
	if m == nil {
		return
	}
	m.superseded.WithLabelValues(slice).Inc()
	atomic.AddUint64(&m.supersededCount, 1)
}

// ObservePoll counts a poller tick.
func (m *MetricsService) ObservePoll(name string, failed bool) {
	if m == nil {
		return
	}
	outcome := "ok"
	if failed {
		outcome = "error"
	}
	m.pollRuns.WithLabelValues(name, outcome).Inc()
	atomic.AddUint64(&m.pollCount, 1)
}

// Snapshot returns aggregated metrics for the state API.
func (m *MetricsService) Snapshot() models.ConsoleMetrics {
	if m == nil {
		return models.ConsoleMetrics{}
	}
	upstream := atomic.LoadUint64(&m.upstreamCount)
	upstreamDuration := atomic.LoadUint64(&m.upstreamDurationTotal)

	var avgUpstreamMs float64
	if upstream > 0 {
		avgUpstreamMs = float64(upstreamDuration) / float64(upstream) / float64(time.Millisecond)
	}

	return models.ConsoleMetrics{
		UpstreamRequests:          upstream,
		UpstreamFailures:          atomic.LoadUint64(&m.upstreamFailureCount),
		AverageUpstreamDurationMs: avgUpstreamMs,
		SupersededResponses:       atomic.LoadUint64(&m.supersededCount),
		PollRuns:                  atomic.LoadUint64(&m.pollCount),
		Goroutines:                runtime.NumGoroutine(),
		GeneratedAt:               time.Now().UTC(),
	}
}
