package models

import "time"

// Profile is the signed-in user's account.
type Profile struct {
	ID            string     `json:"_id" validate:"required"`
	Name          string     `json:"name"`
	Email         string     `json:"email" validate:"required"`
	Role          string     `json:"role"`
	EmailVerified bool       `json:"email_verified"`
	Phone         string     `json:"phone,omitempty"`
	Department    string     `json:"department,omitempty"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
}
