package models

import "time"

// Teacher is a lecturer account managed by administrators.
type Teacher struct {
	ID            string     `json:"_id" validate:"required"`
	Name          string     `json:"name" validate:"required"`
	Email         string     `json:"email" validate:"required"`
	Role          string     `json:"role"`
	EmailVerified bool       `json:"email_verified"`
	CourseCount   int        `json:"course_count,omitempty"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}
