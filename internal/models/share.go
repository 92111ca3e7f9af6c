package models

import "time"

// Student share request statuses. ShareStatusAll omits the filter.
const (
	ShareStatusAll       = "all"
	ShareStatusPending   = "pending"
	ShareStatusApproved  = "approved"
	ShareStatusRejected  = "rejected"
	ShareStatusCancelled = "cancelled"
)

// ShareRequest asks another lecturer to share a course's student roster.
type ShareRequest struct {
	ID              string        `json:"_id" validate:"required"`
	RequesterID     string        `json:"requester_id"`
	Requester       *ShareTeacher `json:"requester,omitempty"`
	OwnerID         string        `json:"owner_id"`
	Owner           *ShareTeacher `json:"owner,omitempty"`
	CourseID        string        `json:"course_id"`
	Course          *Course       `json:"course,omitempty"`
	StudentIDs      []string      `json:"student_ids,omitempty"`
	Status          string        `json:"status" validate:"required"`
	Message         string        `json:"message,omitempty"`
	ResponseMessage string        `json:"response_message,omitempty"`
	CreatedAt       *time.Time    `json:"created_at,omitempty"`
	RespondedAt     *time.Time    `json:"responded_at,omitempty"`
}

// ShareTeacher is a lecturer that can receive share requests.
type ShareTeacher struct {
	ID          string `json:"_id" validate:"required"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	CourseCount int    `json:"course_count"`
}
