package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RespondRawJSONWithETag writes pre-marshaled JSON with a strong ETag and
// honors If-None-Match with a 304. Callers marshal once so the same bytes
// can also go in the cache.
func RespondRawJSONWithETag(ctx *gin.Context, status int, body []byte) {
	sum := sha256.Sum256(body)
	etag := `"` + hex.EncodeToString(sum[:16]) + `"`

	ctx.Header("ETag", etag)

	if match := ctx.GetHeader("If-None-Match"); match != "" && match == etag {
		ctx.Status(http.StatusNotModified)
		return
	}

	ctx.Data(status, "application/json; charset=utf-8", body)
}
