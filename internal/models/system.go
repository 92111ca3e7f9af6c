package models

import "time"

// HealthSnapshot is a point-in-time view of backend health.
type HealthSnapshot struct {
	Status    string            `json:"status" validate:"required"`
	Timestamp *time.Time        `json:"timestamp,omitempty"`
	Uptime    float64           `json:"uptime"`
	Database  HealthComponent   `json:"database"`
	Memory    MemoryUsage       `json:"memory"`
	Services  map[string]string `json:"services,omitempty"`
	Version   string            `json:"version,omitempty"`
}

// HealthComponent reports one dependency of the backend.
type HealthComponent struct {
	Status         string  `json:"status"`
	ResponseTimeMs float64 `json:"response_time_ms"`
}

// MemoryUsage is reported in megabytes.
type MemoryUsage struct {
	Used       float64 `json:"used"`
	Total      float64 `json:"total"`
	Percentage float64 `json:"percentage"`
}

// StatsSnapshot is a point-in-time set of aggregate counters.
type StatsSnapshot struct {
	Users       UserStats       `json:"users"`
	Courses     CourseStats     `json:"courses"`
	Sessions    SessionStats    `json:"sessions"`
	Attendance  AttendanceStats `json:"attendance"`
	GeneratedAt *time.Time      `json:"generated_at,omitempty"`
}

type UserStats struct {
	Total    int `json:"total"`
	Teachers int `json:"teachers"`
	Students int `json:"students"`
	Admins   int `json:"admins"`
}

type CourseStats struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

type SessionStats struct {
	Total  int `json:"total"`
	Active int `json:"active"`
	Today  int `json:"today"`
}

type AttendanceStats struct {
	TotalRecords int     `json:"total_records"`
	Today        int     `json:"today"`
	AverageRate  float64 `json:"average_rate"`
}

// ConsoleMetrics summarises the console's own instrumentation.
type ConsoleMetrics struct {
	UpstreamRequests          uint64    `json:"upstream_requests"`
	UpstreamFailures          uint64    `json:"upstream_failures"`
	AverageUpstreamDurationMs float64   `json:"average_upstream_duration_ms"`
	SupersededResponses       uint64    `json:"superseded_responses"`
	PollRuns                  uint64    `json:"poll_runs"`
	Goroutines                int       `json:"goroutines"`
	GeneratedAt               time.Time `json:"generated_at"`
}
