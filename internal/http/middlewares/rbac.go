package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireHost must run after RequireAuth; it reads the claims RequireAuth
// attached.
func (m *AuthMiddleware) RequireHost() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c)

		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "unauthorized",
					"message": "Missing identity context",
				},
			})
			return
		}

		if !claims.IsHost {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{
					"code":    "forbidden",
					"message": "User does not have host privileges.",
				},
			})
			return
		}
		c.Next()
	}
}

// RequireSelfOrAdmin allows the request through when the caller is acting
// on their own :id, or holds the admin flag.
func (m *AuthMiddleware) RequireSelfOrAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c)

		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "unauthorized",
					"message": "Missing identity context",
				},
			})
			return
		}

		if claims.UserID() != c.Param("id") && !claims.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{
					"code":    "forbidden",
					"message": "The user does not have the permissions to perform this task.",
				},
			})
			return
		}
		c.Next()
	}
}
