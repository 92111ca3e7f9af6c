package dto

import "github.com/noah-isme/sma-adp-console/internal/models"

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string          `json:"token" validate:"required"`
	User  *models.Profile `json:"user"`
}
