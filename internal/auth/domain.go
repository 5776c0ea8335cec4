// Package auth implements the credential and session core: password accounts,
// signed bearer tokens, and the per-request authorization gate.
package auth

import (
	"fmt"
	"time"

	"github.com/taskdeck/taskdeck/internal/platform/httpx"
)

// User represents an account record. RefreshToken holds the single currently
// valid refresh token, or nil when the user is logged out.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	RefreshToken *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Sentinel errors, wrapped around the httpx taxonomy so RespondError maps them
// to status codes without handler-level switches.
var (
	ErrInvalidToken        = fmt.Errorf("invalid token: %w", httpx.ErrUnauthorized)
	ErrInvalidCredentials  = fmt.Errorf("invalid credentials: %w", httpx.ErrUnauthorized)
	ErrEmailTaken          = fmt.Errorf("email already registered: %w", httpx.ErrValidation)
	ErrUnknownRefreshToken = fmt.Errorf("unknown refresh token: %w", httpx.ErrValidation)
	ErrTooManyAttempts     = fmt.Errorf("too many login attempts: %w", httpx.ErrTooManyRequests)
)
