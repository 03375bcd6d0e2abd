package dto

import (
	"time"

	"github.com/spec-kit/process-tracker/internal/domain"
)

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token.
type LoginResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	Operator  OperatorResponse `json:"operator"`
}

// ChangePasswordRequest payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// OperatorResponse is the public operator view.
type OperatorResponse struct {
	ID    string              `json:"id"`
	Name  string              `json:"name"`
	Email string              `json:"email"`
	Role  domain.OperatorRole `json:"role"`
}
