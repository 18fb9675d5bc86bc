package middlewares

import (
	"net/http"
	"strings"

	"github.com/gatherly/eventsapi/internal/auth"
	"github.com/gin-gonic/gin"
)

// tokens travel in a custom header rather than Authorization: Bearer
const TokenHeader = "x-auth-token"

// Keep this small interface so tests can fake it easily.
type TokenVerifier interface {
	VerifyToken(token string) (*auth.Claims, error)
}

type AuthMiddleware struct {
	jwt TokenVerifier
}

func NewAuthMiddleware(jwt TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt}
}

// RequireAuth gates a route on a verified token. A missing token is a
// 401, a present-but-invalid token a 400. On success the decoded claims
// are stashed on the context for the role middlewares downstream.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(TokenHeader))

		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "unauthorized",
					"message": "Access denied. No token provided.",
				},
			})
			return
		}

		claims, err := m.jwt.VerifyToken(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": gin.H{
					"code":    "invalid_token",
					"message": "Invalid token.",
				},
			})
			return
		}

		c.Set(ctxClaimsKey, claims)

		c.Next()
	}
}

// ClaimsFromContext returns the claims RequireAuth attached, so handlers
// don't need to know the magic key.
func ClaimsFromContext(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(ctxClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

func UserIDFromContext(c *gin.Context) (string, bool) {
	claims, ok := ClaimsFromContext(c)
	if !ok {
		return "", false
	}
	return claims.UserID(), claims.UserID() != ""
}
