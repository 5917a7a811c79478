package domain

import (
	"context"
	"time"
)

// SessionVerifier verifies and issues signed session credentials.
type SessionVerifier interface {
	Verify(token string, now time.Time) VerificationOutcome
	Issue(user *User, now time.Time) (token string, expiresAt time.Time, err error)
}

// UserRepository reads user rows and their metering state.
type UserRepository interface {
	GetByID(ctx context.Context, userID string) (*User, error)
	// GetUsageSnapshot returns a fresh metering snapshot. Callers must
	// re-fetch after every accepted action; verdicts computed from a stale
	// snapshot are advisory only.
	GetUsageSnapshot(ctx context.Context, userID string) (*UsageSnapshot, error)
}

// UsageRecorder persists the outcome of a metered action. RecordAction must
// increment the counters atomically, re-validating the limit at write time,
// since two concurrent requests can both pass the pre-flight quota check.
type UsageRecorder interface {
	RecordAction(ctx context.Context, userID string, now time.Time) error
	RecordCost(ctx context.Context, record *UsageRecord) error
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetLogLevel() string
	GetJWTSecret() string
	GetSupabaseURL() string
	GetSupabaseKey() string
	GetVertexProjectID() string
	GetVertexLocation() string
}
