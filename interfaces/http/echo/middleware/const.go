package middleware

const (
	Authorization   = "Authorization"
	RequestIDHeader = "X-Request-ID"

	TokenKey     = "requestToken"
	ClaimsKey    = "tokenClaims"
	RequestIDKey = "requestID"
)
