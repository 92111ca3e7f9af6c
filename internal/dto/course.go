package dto

import "github.com/noah-isme/sma-adp-console/internal/models"

// CourseInput is the payload for creating a course.
type CourseInput struct {
	Title       string `json:"title" validate:"required,min=3,max=200"`
	CourseCode  string `json:"course_code" validate:"required,max=20"`
	Description string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

// UpdateCourseRequest is a partial course update.
type UpdateCourseRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	CourseCode  *string `json:"course_code,omitempty" validate:"omitempty,max=20"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

type CoursesResponse struct {
	Courses    []models.Course `json:"courses" validate:"dive"`
	Pagination *PageInfo       `json:"pagination" validate:"required"`
}

type CourseResponse struct {
	Course *models.Course `json:"course" validate:"required"`
}

type CourseStudentsResponse struct {
	Students   []models.Student `json:"students" validate:"dive"`
	Pagination *PageInfo        `json:"pagination" validate:"required"`
}

type SessionsResponse struct {
	Sessions   []models.Session `json:"sessions" validate:"dive"`
	Pagination *PageInfo        `json:"pagination" validate:"required"`
}

type SessionAttendanceResponse struct {
	Session    *models.Session           `json:"session" validate:"required"`
	Attendance []models.AttendanceRecord `json:"attendance" validate:"dive"`
	Summary    models.AttendanceSummary  `json:"summary"`
}
