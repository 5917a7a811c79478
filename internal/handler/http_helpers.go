package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Ahiya1/mirror-of-dreams-sub003/internal/domain"
	apperrors "github.com/Ahiya1/mirror-of-dreams-sub003/pkg/errors"
)

type contextKey string

const (
	claimsContextKey    contextKey = "claims"
	requestIDContextKey contextKey = "request_id"
)

// GetClaimsFromContext extracts the verified session claims from request context
func GetClaimsFromContext(r *http.Request) (*domain.SessionClaims, bool) {
	claims, ok := r.Context().Value(claimsContextKey).(*domain.SessionClaims)
	return claims, ok
}

// GetRequestIDFromContext extracts the request ID from request context
func GetRequestIDFromContext(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(requestIDContextKey).(string)
	return id, ok
}

// userFromClaims rebuilds the identity the downstream pipeline needs from
// verified claims, without a database read.
func userFromClaims(claims *domain.SessionClaims) *domain.User {
	return &domain.User{
		ID:        claims.UserID,
		Email:     claims.Email,
		Tier:      claims.Tier,
		IsCreator: claims.IsCreator,
		IsAdmin:   claims.IsAdmin,
		IsDemo:    claims.IsDemo,
	}
}

// writeError writes an error response (helper function)
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write([]byte(`{"error":"` + message + `"}`))
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeAppError maps a structured application error to a response
func writeAppError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		writeJSON(w, appErr.StatusCode, appErr)
		return
	}
	writeError(w, apperrors.GetStatusCode(err), "Internal server error")
}
