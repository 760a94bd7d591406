package constants

// Context keys shared by middleware and handlers.
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUsername  = "username"
	ContextKeyPrincipal = "principal"
	ContextKeyRequestID = "request_id"
)

const (
	HeaderAuthorization = "Authorization"
	HeaderRequestID     = "X-Request-Id"
	BearerScheme        = "Bearer"
)

// Validation limits.
const (
	MinPasswordLength     = 8
	MaxSuggestedExercises = 10
)
