package middlewares

// gin context keys written by the middleware chain. RequireAuth is the
// only writer of ctxClaimsKey; the role middlewares and handlers read it.
const (
	ctxClaimsKey = "auth.claims"
	CtxRequestID = "request_id"
)
