package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gatherly/eventsapi/internal/domain/user"
	"github.com/gatherly/eventsapi/internal/security"
	"github.com/gin-gonic/gin"
)

type TokenIssuer interface {
	GenerateToken(userID string, isHost, isAdmin bool) (string, error)
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthHandler struct {
	users  UsersStore
	tokens TokenIssuer
}

func NewAuthHandler(users UsersStore, tokens TokenIssuer) *AuthHandler {
	return &AuthHandler{
		users:  users,
		tokens: tokens,
	}
}

// Login exchanges credentials for a signed token. Unknown email and wrong
// password answer the same 400 so the endpoint does not leak which
// accounts exist.
func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	u, err := h.users.GetByEmail(ctx.Request.Context(), req.Email)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondError(ctx, http.StatusBadRequest, "invalid_credentials", "Invalid email or password.", nil)
			return
		}

		slog.ErrorContext(ctx.Request.Context(), "login lookup failed", "error", err)
		RespondInternal(ctx, "Failed to log in.")
		return
	}

	if err := security.CheckPassword(u.PasswordHash, req.Password); err != nil {
		RespondError(ctx, http.StatusBadRequest, "invalid_credentials", "Invalid email or password.", nil)
		return
	}

	token, err := h.tokens.GenerateToken(u.ID, u.IsHost, u.IsAdmin)

	if err != nil {
		slog.ErrorContext(ctx.Request.Context(), "token generation failed", "error", err)
		RespondInternal(ctx, "Failed to log in.")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"token": token})
}
