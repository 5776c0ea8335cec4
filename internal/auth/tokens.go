package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Tokens issues and verifies HS256-signed bearer tokens. Access and refresh
// tokens share the signing scheme and claim shape; only the validity window
// differs. Whether the server cross-checks stored state is the caller's
// concern, not this type's.
type Tokens struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokens constructs a token issuer/verifier.
func NewTokens(secret string, accessTTL, refreshTTL time.Duration) *Tokens {
	return &Tokens{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// IssueAccess mints a short-lived access token for the given subject.
func (t *Tokens) IssueAccess(subject string) (string, error) {
	return t.issue(subject, t.accessTTL)
}

// IssueRefresh mints a long-lived refresh token for the given subject.
func (t *Tokens) IssueRefresh(subject string) (string, error) {
	return t.issue(subject, t.refreshTTL)
}

func (t *Tokens) issue(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	// The jti makes two tokens for the same subject distinct even when
	// issued within the same second; superseding relies on that.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})

	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded subject.
// Malformed, tampered, and expired tokens all fail with ErrInvalidToken.
func (t *Tokens) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
