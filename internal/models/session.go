package models

import "time"

// Session status values. SessionStatusAll is the sentinel that omits the filter.
const (
	SessionStatusAll     = "all"
	SessionStatusActive  = "active"
	SessionStatusExpired = "expired"
)

// Attendance record statuses.
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceLate    = "late"
)

// Session is one attendance-taking window for a course.
type Session struct {
	ID              string     `json:"_id" validate:"required"`
	CourseID        string     `json:"course_id"`
	SessionCode     string     `json:"session_code"`
	Topic           string     `json:"topic,omitempty"`
	Status          string     `json:"status,omitempty"`
	IsExpired       bool       `json:"is_expired"`
	AttendanceCount int        `json:"attendance_count"`
	StartTime       *time.Time `json:"start_time,omitempty"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
}

// AttendanceRecord is one student's mark for a session.
type AttendanceRecord struct {
	ID          string     `json:"_id" validate:"required"`
	SessionID   string     `json:"session_id"`
	StudentID   string     `json:"student_id"`
	Student     *Student   `json:"student,omitempty"`
	Status      string     `json:"status" validate:"required"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}

// AttendanceSummary carries server-side aggregates for a session.
type AttendanceSummary struct {
	Total      int     `json:"total"`
	Present    int     `json:"present"`
	Absent     int     `json:"absent"`
	Late       int     `json:"late"`
	Percentage float64 `json:"percentage"`
}

// SessionAttendance bundles a session with its attendance records.
type SessionAttendance struct {
	Session *Session           `json:"session"`
	Records []AttendanceRecord `json:"records"`
	Summary AttendanceSummary  `json:"summary"`
}
