package models

import "time"

// FAQCategoryAll is the sentinel that omits the category filter.
const FAQCategoryAll = "all"

// FAQ is a help-centre question and answer.
type FAQ struct {
	ID        string     `json:"_id" validate:"required"`
	Question  string     `json:"question" validate:"required"`
	Answer    string     `json:"answer"`
	Category  string     `json:"category"`
	Order     int        `json:"order"`
	IsActive  bool       `json:"is_active"`
	Tags      []string   `json:"tags,omitempty"`
	Views     int        `json:"views,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// FAQCategory names a category with its FAQ count.
type FAQCategory struct {
	Name  string `json:"name" validate:"required"`
	Count int    `json:"count"`
}

// SupportInfo is the published support contact card.
type SupportInfo struct {
	Email        string `json:"email" validate:"required"`
	Phone        string `json:"phone,omitempty"`
	Hours        string `json:"hours,omitempty"`
	ResponseTime string `json:"response_time,omitempty"`
}

// SupportTicket acknowledges a support contact submission.
type SupportTicket struct {
	TicketID  string     `json:"ticket_id" validate:"required"`
	Status    string     `json:"status"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}
