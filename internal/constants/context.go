package constants

// ContextKey is the dedicated type for request-scoped context values.
type ContextKey string

// CtxKeyRequestID carries the request id on the request context so layers
// below the handlers can correlate their logs.
const CtxKeyRequestID ContextKey = "request_id"

// GinKeyClaims is the gin context key under which the gate stores the decoded
// claim set for downstream handlers.
const GinKeyClaims = "auth_claims"
