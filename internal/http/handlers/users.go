package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gatherly/eventsapi/internal/domain/user"
	"github.com/gatherly/eventsapi/internal/http/middlewares"
	"github.com/gatherly/eventsapi/internal/security"
	"github.com/gatherly/eventsapi/internal/utils"
	"github.com/gin-gonic/gin"
)

type UsersStore interface {
	Create(ctx context.Context, req user.CreateUserRequest, passwordHash string) (user.User, error)
	GetByID(ctx context.Context, id string) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
	Update(ctx context.Context, id string, req user.UpdateUserRequest, passwordHash string) (user.User, error)
	Delete(ctx context.Context, id string) (user.User, error)
}

type UsersHandler struct {
	users  UsersStore
	tokens TokenIssuer
}

func NewUsersHandler(users UsersStore, tokens TokenIssuer) *UsersHandler {
	return &UsersHandler{
		users:  users,
		tokens: tokens,
	}
}

// Register creates an account. The fresh token rides the x-auth-token
// response header so clients can authenticate without a second call, and
// the body carries only the public subset of the record.
func (h *UsersHandler) Register(ctx *gin.Context) {
	var req user.CreateUserRequest

	if !BindJSON(ctx, &req) {
		return
	}

	hash, err := security.HashPassword(req.Password)

	if err != nil {
		slog.ErrorContext(ctx.Request.Context(), "password hashing failed", "error", err)
		RespondInternal(ctx, "Failed to register user.")
		return
	}

	u, err := h.users.Create(ctx.Request.Context(), req, hash)

	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			RespondError(ctx, http.StatusBadRequest, "email_taken", "User already registered.", nil)
			return
		}

		slog.ErrorContext(ctx.Request.Context(), "user create failed", "error", err)
		RespondInternal(ctx, "Failed to register user.")
		return
	}

	token, err := h.tokens.GenerateToken(u.ID, u.IsHost, u.IsAdmin)

	if err != nil {
		slog.ErrorContext(ctx.Request.Context(), "token generation failed", "error", err)
		RespondInternal(ctx, "Failed to register user.")
		return
	}

	ctx.Header(middlewares.TokenHeader, token)

	ctx.JSON(http.StatusOK, gin.H{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
	})
}

// Me returns the caller's own record, resolved from the token subject.
func (h *UsersHandler) Me(ctx *gin.Context) {
	id, ok := middlewares.UserIDFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Access denied. No token provided.")
		return
	}

	u, err := h.users.GetByID(ctx.Request.Context(), id)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "The user with the given ID was not found.")
			return
		}

		slog.ErrorContext(ctx.Request.Context(), "user lookup failed", "error", err)
		RespondInternal(ctx, "Failed to fetch user.")
		return
	}

	ctx.JSON(http.StatusOK, u)
}

// UpdateUser replaces the record behind :id. The password is always
// re-hashed from the payload, so the field is required on update too.
// Responds with the same public subset as Register; DeleteUser returns
// the whole record.
func (h *UsersHandler) UpdateUser(ctx *gin.Context) {
	id := ctx.Param("id")

	if !utils.IsUUID(id) {
		RespondBadRequest(ctx, "Invalid user id.", nil)
		return
	}

	var req user.UpdateUserRequest

	if !BindJSON(ctx, &req) {
		return
	}

	hash, err := security.HashPassword(req.Password)

	if err != nil {
		slog.ErrorContext(ctx.Request.Context(), "password hashing failed", "error", err)
		RespondInternal(ctx, "Failed to update user.")
		return
	}

	u, err := h.users.Update(ctx.Request.Context(), id, req, hash)

	if err != nil {
		switch {
		case errors.Is(err, user.ErrNotFound):
			RespondNotFound(ctx, "The user with the given ID was not found.")
		case errors.Is(err, user.ErrEmailTaken):
			RespondError(ctx, http.StatusBadRequest, "email_taken", "User already registered.", nil)
		default:
			slog.ErrorContext(ctx.Request.Context(), "user update failed", "error", err)
			RespondInternal(ctx, "Failed to update user.")
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
	})
}

// DeleteUser removes the record behind :id and returns it.
func (h *UsersHandler) DeleteUser(ctx *gin.Context) {
	id := ctx.Param("id")

	if !utils.IsUUID(id) {
		RespondBadRequest(ctx, "Invalid user id.", nil)
		return
	}

	u, err := h.users.Delete(ctx.Request.Context(), id)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "The user with the given ID was not found.")
			return
		}

		slog.ErrorContext(ctx.Request.Context(), "user delete failed", "error", err)
		RespondInternal(ctx, "Failed to delete user.")
		return
	}

	ctx.JSON(http.StatusOK, u)
}
