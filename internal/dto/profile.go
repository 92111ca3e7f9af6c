package dto

import "github.com/noah-isme/sma-adp-console/internal/models"

// UpdateProfileRequest is a partial profile update.
type UpdateProfileRequest struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,min=2,max=120"`
	Phone      *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Department *string `json:"department,omitempty" validate:"omitempty,max=120"`
}

// ChangePasswordRequest must pick a new password that differs from the old one.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,nefield=CurrentPassword"`
}

type ProfileResponse struct {
	User *models.Profile `json:"user" validate:"required"`
}
