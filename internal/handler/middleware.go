package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Ahiya1/mirror-of-dreams-sub003/internal/domain"
)

// SessionMiddleware verifies the session credential on every request and
// populates the authenticated-identity context. Every verification failure
// maps to 401; the failure kind only changes the message and what gets
// logged.
type SessionMiddleware struct {
	sessions domain.SessionVerifier
	logger   domain.Logger
}

func NewSessionMiddleware(sessions domain.SessionVerifier, logger domain.Logger) *SessionMiddleware {
	return &SessionMiddleware{
		sessions: sessions,
		logger:   logger,
	}
}

func (m *SessionMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			writeError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		token := parts[1]
		if token == "" {
			writeError(w, http.StatusUnauthorized, "Token required")
			return
		}

		now := time.Now()
		outcome := m.sessions.Verify(token, now)
		if !outcome.Valid {
			switch outcome.FailureKind {
			case domain.FailureExpired:
				expiredAgo := time.Duration(0)
				if outcome.ExpiredAt != nil {
					expiredAgo = now.Sub(*outcome.ExpiredAt)
				}
				m.logger.Info("Rejected expired session", "expired_ago", expiredAgo.Round(time.Minute))
				writeError(w, http.StatusUnauthorized, "Session expired - please sign in again")
			case domain.FailureNotYetValid:
				m.logger.Warn("Rejected not-yet-valid session", "valid_from", outcome.ValidFrom)
				writeError(w, http.StatusUnauthorized, "Session not yet valid")
			default:
				m.logger.Warn("Rejected malformed session credential")
				writeError(w, http.StatusUnauthorized, "Invalid session")
			}
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, outcome.Claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDMiddleware tags each request with an ID for log correlation.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)
		ctx := context.WithValue(r.Context(), requestIDContextKey, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
