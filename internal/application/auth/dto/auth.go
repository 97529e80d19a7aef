package dto

import (
	"time"

	"coursekit/internal/domain/user"
)

// MagicLinkRequest asks for a one-time login link.
type MagicLinkRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Redirect string `json:"redirect,omitempty"`
}

// PasswordLoginRequest carries admin credentials.
type PasswordLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the session owner as shown to the client.
type UserResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserResponse maps a domain user onto the API shape.
func NewUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role.String(),
		CreatedAt: u.CreatedAt,
	}
}
