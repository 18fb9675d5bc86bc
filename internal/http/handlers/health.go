package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// Healthz reports process liveness only.
func Healthz(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readyz reports readiness. A nil pinger (memory-backed deployments)
// is always ready.
func Readyz(db Pinger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if db != nil {
			pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
			defer cancel()

			if err := db.Ping(pingCtx); err != nil {
				ctx.JSON(http.StatusServiceUnavailable, gin.H{
					"status": "unavailable",
					"db":     "down",
				})
				return
			}
		}

		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
