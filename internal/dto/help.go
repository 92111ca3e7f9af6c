package dto

import "github.com/noah-isme/sma-adp-console/internal/models"

// FAQFilter narrows FAQ listings; Category "all" is omitted.
type FAQFilter struct {
	Category string
	Search   string
}

// FAQInput is the payload for creating or replacing a FAQ.
type FAQInput struct {
	Question string   `json:"question" validate:"required,min=5"`
	Answer   string   `json:"answer" validate:"required"`
	Category string   `json:"category" validate:"required"`
	Order    int      `json:"order,omitempty" validate:"gte=0"`
	IsActive *bool    `json:"is_active,omitempty"`
	Tags     []string `json:"tags,omitempty" validate:"omitempty,dive,required"`
}

type BulkFAQRequest struct {
	FAQs []FAQInput `json:"faqs" validate:"required,min=1,max=200,dive"`
}

// ContactRequest is the payload for POST /support/contact.
type ContactRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Subject  string `json:"subject" validate:"required,max=200"`
	Message  string `json:"message" validate:"required,min=10"`
	Category string `json:"category,omitempty"`
}

type FAQsResponse struct {
	FAQs []models.FAQ `json:"faqs" validate:"dive"`
}

type FAQResponse struct {
	FAQ *models.FAQ `json:"faq" validate:"required"`
}

type FAQCategoriesResponse struct {
	Categories []models.FAQCategory `json:"categories" validate:"dive"`
}

type BulkFAQResponse struct {
	Message string       `json:"message,omitempty"`
	Created []models.FAQ `json:"created" validate:"dive"`
}

type SupportInfoResponse struct {
	Support *models.SupportInfo `json:"support" validate:"required"`
}

type ContactResponse struct {
	Message string                `json:"message,omitempty"`
	Ticket  *models.SupportTicket `json:"ticket" validate:"required"`
}
