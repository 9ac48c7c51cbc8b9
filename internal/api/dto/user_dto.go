package dto

import (
	"time"

	"github.com/bafa2024/complaint-hub-beta/internal/domain"
)

// RegisterUserRequest payload.
type RegisterUserRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Phone    *string `json:"phone,omitempty"`
	City     *string `json:"city,omitempty"`
}

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse describes an account.
type UserResponse struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Email   string      `json:"email"`
	Role    domain.Role `json:"role"`
	BrandID *string     `json:"brand_id,omitempty"`
	City    *string     `json:"city,omitempty"`
}

// AuthResponse returns a signed token with its expiry.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}
