package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Ahiya1/mirror-of-dreams-sub003/internal/domain"
)

const (
	standardSessionLifetime = 30 * 24 * time.Hour
	demoSessionLifetime     = 7 * 24 * time.Hour
)

// sessionClaims is the wire form of a session credential.
type sessionClaims struct {
	Email     string      `json:"email,omitempty"`
	Tier      domain.Tier `json:"tier,omitempty"`
	IsCreator bool        `json:"is_creator,omitempty"`
	IsAdmin   bool        `json:"is_admin,omitempty"`
	IsDemo    bool        `json:"is_demo,omitempty"`
	jwt.RegisteredClaims
}

// SessionService issues and verifies HS256-signed session credentials.
type SessionService struct {
	secret []byte
	logger domain.Logger
}

// NewSessionService fails when the signing secret is empty; a process
// without a verification key must not start.
func NewSessionService(secret string, logger domain.Logger) (*SessionService, error) {
	if secret == "" {
		return nil, fmt.Errorf("session signing secret is required")
	}
	return &SessionService{
		secret: []byte(secret),
		logger: logger,
	}, nil
}

// Issue signs a credential for the user and returns it with its expiry:
// 30-day lifetime for standard sessions, 7-day for demo sessions.
func (s *SessionService) Issue(user *domain.User, now time.Time) (string, time.Time, error) {
	lifetime := standardSessionLifetime
	if user.IsDemo {
		lifetime = demoSessionLifetime
	}
	expiresAt := now.Add(lifetime)

	claims := sessionClaims{
		Email:     user.Email,
		Tier:      user.Tier,
		IsCreator: user.IsCreator,
		IsAdmin:   user.IsAdmin,
		IsDemo:    user.IsDemo,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks a credential against the signing secret at the given
// instant. Checks run in a fixed order: signature and structure first, then
// activation, then expiry, so forged input never gets far enough for its
// claims to be read. Every expected failure is an ordinary return value.
//
// Time claims are validated here against the explicit now rather than by
// the JWT library, which would read the wall clock.
func (s *SessionService) Verify(token string, now time.Time) domain.VerificationOutcome {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(
		token,
		&claims,
		func(t *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return domain.VerificationOutcome{
			Valid:       false,
			FailureKind: domain.FailureMalformed,
		}
	}

	if claims.NotBefore != nil && now.Before(claims.NotBefore.Time) {
		validFrom := claims.NotBefore.Time
		return domain.VerificationOutcome{
			Valid:       false,
			FailureKind: domain.FailureNotYetValid,
			ValidFrom:   &validFrom,
		}
	}

	// A credential expires at the exact expiry instant, boundary inclusive.
	// A missing exp claim means the credential never expires; callers that
	// require an expiry must check SessionClaims.ExpiresAt themselves.
	if claims.ExpiresAt != nil && !now.Before(claims.ExpiresAt.Time) {
		expiredAt := claims.ExpiresAt.Time
		return domain.VerificationOutcome{
			Valid:       false,
			FailureKind: domain.FailureExpired,
			ExpiredAt:   &expiredAt,
		}
	}

	verified := &domain.SessionClaims{
		UserID:    claims.Subject,
		Email:     claims.Email,
		Tier:      claims.Tier,
		IsCreator: claims.IsCreator,
		IsAdmin:   claims.IsAdmin,
		IsDemo:    claims.IsDemo,
	}
	if claims.IssuedAt != nil {
		verified.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		verified.ExpiresAt = claims.ExpiresAt.Time
	}

	return domain.VerificationOutcome{
		Valid:  true,
		Claims: verified,
	}
}
