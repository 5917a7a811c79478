package domain

import "time"

// FailureKind classifies why a session credential was rejected.
type FailureKind string

const (
	FailureExpired     FailureKind = "expired"
	FailureMalformed   FailureKind = "malformed"
	FailureNotYetValid FailureKind = "not_yet_valid"
)

// SessionClaims is the verified identity carried by a session credential.
type SessionClaims struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Tier      Tier      `json:"tier"`
	IsCreator bool      `json:"is_creator"`
	IsAdmin   bool      `json:"is_admin"`
	IsDemo    bool      `json:"is_demo"`
	IssuedAt  time.Time `json:"issued_at"`
	// ExpiresAt is zero for credentials issued before expiry became
	// mandatory; such credentials never expire.
	ExpiresAt time.Time `json:"expires_at"`
}

// VerificationOutcome is the result of verifying a session credential.
// Expected invalidity (expired, malformed, not yet valid) is an ordinary
// value here, never an error.
type VerificationOutcome struct {
	Valid  bool           `json:"valid"`
	Claims *SessionClaims `json:"claims,omitempty"`

	FailureKind FailureKind `json:"failure_kind,omitempty"`
	// ExpiredAt is the instant an expired credential ceased being valid.
	ExpiredAt *time.Time `json:"expired_at,omitempty"`
	// ValidFrom is the activation instant of a not-yet-valid credential.
	ValidFrom *time.Time `json:"valid_from,omitempty"`
}
