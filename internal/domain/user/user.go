package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already in use")
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never expose hash in JSON
	IsHost       bool      `json:"isHost"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=50"`
	Email    string `json:"email" binding:"required,email,min=10,max=75"`
	Password string `json:"password" binding:"required,min=6,max=100"`
	IsHost   bool   `json:"isHost"`
	IsAdmin  bool   `json:"isAdmin"`
}

// a full update payload; the same schema as registration, and the password
// field is always re-hashed whatever value the caller resends.
type UpdateUserRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=50"`
	Email    string `json:"email" binding:"required,email,min=10,max=75"`
	Password string `json:"password" binding:"required,min=6,max=100"`
	IsHost   bool   `json:"isHost"`
	IsAdmin  bool   `json:"isAdmin"`
}
