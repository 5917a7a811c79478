package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Ahiya1/mirror-of-dreams-sub003/internal/domain"
)

type mockUserRepoWithUsers struct {
	mockUserRepo
	users map[string]*domain.User
}

func (m *mockUserRepoWithUsers) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	user, ok := m.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func TestAuthHandler_CreateSession(t *testing.T) {
	repo := &mockUserRepoWithUsers{
		users: map[string]*domain.User{
			"user-123": {ID: "user-123", Email: "dreamer@example.com", Tier: domain.TierPro},
		},
	}
	h := NewAuthHandler(&mockSessionVerifier{}, repo, NewMockHandlerLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/session", strings.NewReader(`{"user_id":"user-123"}`))
	rr := httptest.NewRecorder()
	h.CreateSession(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rr.Code, http.StatusCreated, rr.Body.String())
	}

	var resp createSessionResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Token != "issued-token" {
		t.Errorf("token = %q", resp.Token)
	}
	if resp.Tier != "pro" {
		t.Errorf("tier = %q, want pro", resp.Tier)
	}
	if resp.ExpiresAt.Before(time.Now().Add(29 * 24 * time.Hour)) {
		t.Errorf("expires_at = %v, want ~30 days out", resp.ExpiresAt)
	}
}

func TestAuthHandler_CreateSessionValidation(t *testing.T) {
	h := NewAuthHandler(&mockSessionVerifier{}, &mockUserRepoWithUsers{users: map[string]*domain.User{}}, NewMockHandlerLogger())

	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{name: "Missing user_id", body: `{}`, wantCode: http.StatusBadRequest},
		{name: "Invalid JSON", body: `{`, wantCode: http.StatusBadRequest},
		{name: "Unknown user", body: `{"user_id":"ghost"}`, wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/session", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			h.CreateSession(rr, req)

			if rr.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rr.Code, tt.wantCode)
			}
		})
	}
}

func TestAuthHandler_ValidateSession(t *testing.T) {
	h := NewAuthHandler(&mockSessionVerifier{}, &mockUserRepoWithUsers{}, NewMockHandlerLogger())

	req := authedRequest(http.MethodGet, "/api/v1/auth/validate", "")
	rr := httptest.NewRecorder()
	h.ValidateSession(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}

	var claims domain.SessionClaims
	if err := json.Unmarshal(rr.Body.Bytes(), &claims); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Errorf("UserID = %q, want user-123", claims.UserID)
	}
}
