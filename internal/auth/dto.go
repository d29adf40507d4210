package auth

import (
	"github.com/angelmondragon/novastore/internal/users"
	"github.com/angelmondragon/novastore/pkg/enums"
)

// RegisterRequest contains the payload required to open an account.
type RegisterRequest struct {
	Name     string     `json:"name"`
	Email    string     `json:"email" validate:"required"`
	Password string     `json:"password" validate:"required"`
	Role     enums.Role `json:"role" validate:"required,oneof=buyer seller"`
}

// LoginRequest captures the credentials and the role the user signs in as.
type LoginRequest struct {
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Role     enums.Role `json:"role"`
}

// AuthResponse is returned after a successful register or login.
type AuthResponse struct {
	User *users.UserDTO `json:"user"`
}
