package dto

import "github.com/noah-isme/sma-adp-console/internal/models"

// CreateLecturerRequest is the payload for POST /admin/teachers.
type CreateLecturerRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=120"`
	Email string `json:"email" validate:"required,email"`
}

// BulkCreateLecturersRequest is the payload for POST /admin/teachers/bulk.
type BulkCreateLecturersRequest struct {
	Teachers []CreateLecturerRequest `json:"teachers" validate:"required,min=1,max=500,dive"`
}

// UpdateLecturerRequest is a partial teacher update.
type UpdateLecturerRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=2,max=120"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}

// ReassignCourseRequest moves a course to another lecturer.
type ReassignCourseRequest struct {
	NewLecturerID string `json:"new_lecturer_id" validate:"required"`
	Reason        string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// SemesterCleanupRequest must carry an explicit confirmation.
type SemesterCleanupRequest struct {
	Confirm bool `json:"confirm"`
}

// AuditLogFilter narrows audit log listings; "all" values are omitted.
type AuditLogFilter struct {
	Action   string
	Severity string
	UserID   string
}

type TeachersResponse struct {
	Teachers   []models.Teacher `json:"teachers" validate:"dive"`
	Pagination *PageInfo        `json:"pagination" validate:"required"`
}

type TeacherCoursesResponse struct {
	Teacher    *models.Teacher `json:"teacher" validate:"required"`
	Courses    []models.Course `json:"courses" validate:"dive"`
	Pagination *PageInfo       `json:"pagination" validate:"required"`
}

type CourseSessionsResponse struct {
	Course     *models.Course   `json:"course" validate:"required"`
	Sessions   []models.Session `json:"sessions" validate:"dive"`
	Pagination *PageInfo        `json:"pagination" validate:"required"`
}

type TeacherResponse struct {
	Message string          `json:"message,omitempty"`
	Teacher *models.Teacher `json:"teacher" validate:"required"`
}

// BulkFailure reports one rejected row of a bulk create.
type BulkFailure struct {
	Email string `json:"email"`
	Error string `json:"error"`
}

type BulkCreateLecturersResponse struct {
	Message string           `json:"message,omitempty"`
	Created []models.Teacher `json:"created" validate:"dive"`
	Failed  []BulkFailure    `json:"failed"`
}

type ReassignCourseResponse struct {
	Message string         `json:"message,omitempty"`
	Course  *models.Course `json:"course" validate:"required"`
}

type AuditLogsResponse struct {
	Logs       []models.AuditLog      `json:"logs" validate:"dive"`
	Pagination *PageInfo              `json:"pagination" validate:"required"`
	Analytics  *models.AuditAnalytics `json:"analytics,omitempty"`
}

type SemesterCleanupResponse struct {
	Message string         `json:"message,omitempty"`
	Deleted map[string]int `json:"deleted"`
}

// MessageResponse is returned by endpoints that only acknowledge.
type MessageResponse struct {
	Message string `json:"message,omitempty"`
}
