package dto

import "time"

// RegisterRequest registration input. Password is hashed in the use case.
type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Role            string `json:"role"`
	Branch          string `json:"branch"`
	Contact         string `json:"contact"`
}

// LoginRequest login input.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by both register and login: the signed token plus
// the identity fields the dashboard needs up front.
type AuthResponse struct {
	Token  string `json:"token"`
	Role   string `json:"role"`
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Branch string `json:"branch"`
}

// UserResponse is a user without the credential hash.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Branch    string    `json:"branch"`
	Contact   string    `json:"contact"`
	Photo     string    `json:"photo,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
