package domain

import "errors"

// Domain errors
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrInvalidToken     = errors.New("invalid token")
	ErrQuotaExceeded    = errors.New("quota exceeded")
	ErrAccessDenied     = errors.New("access denied")
	ErrThinkingExceeded = errors.New("thinking budget exceeded")
)

// QuotaDeniedError carries a denial verdict across the service boundary so
// the transport layer can surface the reason and reset instant.
type QuotaDeniedError struct {
	Verdict QuotaVerdict
}

func (e *QuotaDeniedError) Error() string {
	return "quota exceeded: " + string(e.Verdict.DenialReason)
}

// ValidationError represents a validation error with field and message information.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}
