package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Ahiya1/mirror-of-dreams-sub003/internal/domain"
)

// AuthHandler issues and validates session credentials.
type AuthHandler struct {
	sessions domain.SessionVerifier
	userRepo domain.UserRepository
	logger   domain.Logger
}

func NewAuthHandler(sessions domain.SessionVerifier, userRepo domain.UserRepository, logger domain.Logger) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		userRepo: userRepo,
		logger:   logger,
	}
}

type createSessionRequest struct {
	UserID string `json:"user_id"`
}

type createSessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Tier      string    `json:"tier"`
}

// CreateSession handles POST /auth/session. Sign-in itself (password,
// OAuth) happens upstream; this endpoint turns an authenticated user row
// into a signed session credential.
func (h *AuthHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	user, err := h.userRepo.GetByID(r.Context(), req.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Error("Failed to load user for session", err, "user_id", req.UserID)
		writeError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	token, expiresAt, err := h.sessions.Issue(user, time.Now())
	if err != nil {
		h.logger.Error("Failed to issue session", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	writeJSON(w, http.StatusCreated, createSessionResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Tier:      string(user.Tier),
	})
}

// ValidateSession handles GET /auth/validate (for frontend validation).
// Runs behind the session middleware, so reaching it means the credential
// verified; it just echoes the claims back.
func (h *AuthHandler) ValidateSession(w http.ResponseWriter, r *http.Request) {
	claims, ok := GetClaimsFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	writeJSON(w, http.StatusOK, claims)
}
