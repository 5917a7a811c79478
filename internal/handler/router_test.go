package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Ahiya1/mirror-of-dreams-sub003/internal/domain"
	"github.com/Ahiya1/mirror-of-dreams-sub003/internal/service"
)

func newTestRouter(sessions *mockSessionVerifier) http.Handler {
	logger := NewMockHandlerLogger()
	authHandler := NewAuthHandler(sessions, &mockUserRepo{}, logger)
	generationHandler := NewGenerationHandler(&mockGenerationService{}, &mockUserRepo{}, service.NewQuotaService(), logger)
	middleware := NewSessionMiddleware(sessions, logger).Middleware
	return NewRouter(authHandler, generationHandler, middleware)
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(&mockSessionVerifier{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if !strings.Contains(rr.Body.String(), "mirror-of-dreams") {
		t.Fatalf("unexpected body: %s", rr.Body.String())
	}
}

func TestRouter_ProtectedRoutesRequireSession(t *testing.T) {
	router := newTestRouter(&mockSessionVerifier{
		outcome: domain.VerificationOutcome{Valid: false, FailureKind: domain.FailureMalformed},
	})

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/reflections"},
		{http.MethodGet, "/api/v1/usage"},
		{http.MethodGet, "/api/v1/auth/validate"},
	}

	for _, route := range routes {
		req := httptest.NewRequest(route.method, route.path, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: status = %d, want %d", route.method, route.path, rr.Code, http.StatusUnauthorized)
		}
	}
}

func TestRouter_SessionIssuanceIsUnprotected(t *testing.T) {
	router := newTestRouter(&mockSessionVerifier{})

	// No Authorization header; the route must still be reachable (404 here
	// because the mock repo has no users, not 401).
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/session", strings.NewReader(`{"user_id":"nobody"}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}
