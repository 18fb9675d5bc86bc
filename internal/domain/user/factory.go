package user

import (
	"time"

	"github.com/google/uuid"
)

func NewFromCreateRequest(req CreateUserRequest, passwordHash string) User {
	now := time.Now().UTC()

	return User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		IsHost:       req.IsHost,
		IsAdmin:      req.IsAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
