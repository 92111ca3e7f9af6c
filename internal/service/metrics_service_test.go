package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetricsService()

	m.ObserveUpstreamRequest(http.MethodGet, "/admin/teachers", http.StatusOK, 20*time.Millisecond)
	m.ObserveUpstreamRequest(http.MethodDelete, "/admin/teachers/:id", http.StatusNotFound, 40*time.Millisecond)
	m.ObserveUpstreamRequest(http.MethodGet, "/admin/health", 0, 0)
	m.ObserveSuperseded("admin.teachers")
	m.ObservePoll("health", false)
	m.ObservePoll("stats", true)

	snap := m.Snapshot()
	assert.Equal(t, uint64(3), snap.UpstreamRequests)
	assert.Equal(t, uint64(2), snap.UpstreamFailures)
	assert.InDelta(t, 20.0, snap.AverageUpstreamDurationMs, 0.001)
	assert.Equal(t, uint64(1), snap.SupersededResponses)
	assert.Equal(t, uint64(2), snap.PollRuns)
	assert.Greater(t, snap.Goroutines, 0)
}

func TestMetricsHandlerExposesCollectors(t *testing.T) {
	m := NewMetricsService()
	m.ObserveHTTPRequest(http.MethodGet, "/api/v1/state/:store", http.StatusOK, time.Millisecond)
	m.ObserveSuperseded("admin.stats")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "http_requests_total")
	assert.Contains(t, body, `store_superseded_responses_total{slice="admin.stats"} 1`)
}

func TestNilMetricsServiceIsSafe(t *testing.T) {
	var m *MetricsService
	m.ObserveUpstreamRequest(http.MethodGet, "/x", http.StatusOK, time.Millisecond)
	m.ObserveSuperseded("x")
	m.ObservePoll("x", false)
	assert.Equal(t, uint64(0), m.Snapshot().UpstreamRequests)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
