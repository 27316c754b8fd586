package constants

// Context keys
const (
	CallerKey    = "caller"
	RequestIDKey = "requestID"
)

// Error messages
const (
	ErrUnexpected          = "Unexpected error"
	ErrInvalidID           = "Invalid id"
	ErrInvalidInput        = "Invalid input"
	ErrForbidden           = "not permitted"
	ErrUnauthorized        = "Authentication required"
	ErrInvalidCredentials  = "Invalid email or password"
	ErrInvalidToken        = "Invalid or expired token"
	ErrAuthHeaderRequired  = "Authorization header is required"
	ErrInvalidAuthHeader   = "Invalid authorization header format"
	ErrInvalidSortField    = "sort must be name, stock, createdAt or category"
	ErrInvalidSortOrder    = "order must be asc or desc"
	MsgSuccessfullyLogout  = "Successfully logged out"
	MsgNotFoundSuffix      = " not found"
	MsgAlreadyExistsSuffix = " already exists"
)
