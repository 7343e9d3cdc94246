package errors

// Error codes for standardized error responses
const (
	// Authentication errors
	ErrCodeUnauthorized           = "unauthorized"
	ErrCodeForbidden              = "forbidden"
	ErrCodeInvalidToken           = "invalid_token"
	ErrCodeAuthenticationRequired = "authentication_required"

	// Validation errors
	ErrCodeInvalidRequest   = "invalid_request"
	ErrCodeValidationFailed = "validation_failed"
	ErrCodeMissingField     = "missing_field"

	// Resource errors
	ErrCodeNotFound = "not_found"
	ErrCodeConflict = "conflict"

	// Session lifecycle errors
	ErrCodeQuizNotFound      = "quiz_not_found"
	ErrCodeSessionNotFound   = "session_not_found"
	ErrCodePlayerNotFound    = "player_not_found"
	ErrCodeInvalidState      = "invalid_state"
	ErrCodeNameTaken         = "name_taken"
	ErrCodeAlreadyAnswered   = "already_answered"
	ErrCodeSessionCreateFail = "session_creation_failed"
	ErrCodeUnknownMutation   = "unknown_mutation"

	// Server errors
	ErrCodeInternalError      = "internal_error"
	ErrCodeServiceUnavailable = "service_unavailable"
	ErrCodeUpstreamError      = "upstream_error"
)
