package users

import (
	"time"

	"github.com/angelmondragon/novastore/pkg/enums"
)

// User is a registered account. Records are never edited or deleted.
type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"passwordHash"`
	Role         enums.Role `json:"role"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// UserDTO is the public shape that omits credentials.
type UserDTO struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      enums.Role `json:"role"`
	CreatedAt time.Time  `json:"createdAt"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Name         string
	Email        string
	PasswordHash string
	Role         enums.Role
}

func FromModel(u *User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
