package models

import "time"

// Course is a taught course owned by one lecturer.
type Course struct {
	ID           string     `json:"_id" validate:"required"`
	Title        string     `json:"title" validate:"required"`
	CourseCode   string     `json:"course_code"`
	Description  string     `json:"description,omitempty"`
	TeacherID    string     `json:"teacher_id,omitempty"`
	Teacher      *Teacher   `json:"teacher,omitempty"`
	StudentCount int        `json:"student_count"`
	SessionCount int        `json:"session_count"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// Student is a learner enrolled in a course.
type Student struct {
	ID        string     `json:"_id" validate:"required"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	MatricNo  string     `json:"matric_no"`
	Level     string     `json:"level,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}
