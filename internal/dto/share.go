package dto

import "github.com/noah-isme/sma-adp-console/internal/models"

// ShareRequestInput asks a course owner to share students.
type ShareRequestInput struct {
	OwnerID    string   `json:"owner_id" validate:"required"`
	CourseID   string   `json:"course_id" validate:"required"`
	StudentIDs []string `json:"student_ids,omitempty" validate:"omitempty,dive,required"`
	Message    string   `json:"message,omitempty" validate:"omitempty,max=1000"`
}

// ShareResponseInput approves or rejects an incoming request.
type ShareResponseInput struct {
	Status          string `json:"status" validate:"required,oneof=approved rejected"`
	ResponseMessage string `json:"response_message,omitempty" validate:"omitempty,max=1000"`
}

type ShareRequestsResponse struct {
	Requests []models.ShareRequest `json:"requests" validate:"dive"`
}

type ShareRequestResponse struct {
	Request *models.ShareRequest `json:"request" validate:"required"`
}

type ShareTeachersResponse struct {
	Teachers []models.ShareTeacher `json:"teachers" validate:"dive"`
}
