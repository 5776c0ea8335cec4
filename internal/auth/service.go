package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskdeck/taskdeck/internal/platform/httpx"
)

// Service orchestrates the session lifecycle: signup, login, refresh, logout.
type Service struct {
	repo     Repository
	tokens   *Tokens
	throttle *Throttle
	cost     int
}

// NewService constructs a new Service. throttle may be nil, in which case
// login attempts are not rate limited.
func NewService(repo Repository, tokens *Tokens, throttle *Throttle, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{repo: repo, tokens: tokens, throttle: throttle, cost: bcryptCost}
}

// Signup registers a new account and returns its first token pair.
func (s *Service) Signup(ctx context.Context, name, email, password string) (*TokenPair, error) {
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, httpx.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash password: %w", err)
	}

	user := &User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return s.issuePair(ctx, user.ID)
}

// Login validates credentials and returns a fresh token pair. The stored
// refresh token is overwritten, superseding any previously issued one.
func (s *Service) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	if err := s.throttle.Hit(ctx, email); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	s.throttle.Reset(ctx, email)
	return s.issuePair(ctx, user.ID)
}

// Refresh exchanges a valid, currently-stored refresh token for a new access
// token. The refresh token itself is not rotated. Any failure, including
// infrastructure trouble while loading the user, surfaces as ErrInvalidToken;
// the caller's only recourse is a fresh login either way.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	subject, err := s.tokens.Verify(refreshToken)
	if err != nil {
		return "", ErrInvalidToken
	}

	user, err := s.repo.FindByID(ctx, subject)
	if err != nil {
		return "", ErrInvalidToken
	}
	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		// Cryptographically valid but superseded by a later login, or
		// already logged out.
		return "", ErrInvalidToken
	}

	access, err := s.tokens.IssueAccess(user.ID)
	if err != nil {
		return "", ErrInvalidToken
	}
	return access, nil
}

// Logout clears the stored refresh token of whichever user holds the
// presented value. A token that no longer matches cannot log anyone out.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	user, err := s.repo.FindByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return ErrUnknownRefreshToken
		}
		return err
	}
	return s.repo.SetRefreshToken(ctx, user.ID, nil)
}

// Me returns the account behind the given subject.
func (s *Service) Me(ctx context.Context, subject string) (*User, error) {
	return s.repo.FindByID(ctx, subject)
}

// SweepExpiredRefreshTokens clears stored refresh tokens that no longer
// verify (expired or signed under a retired secret) and reports how many
// were cleared.
func (s *Service) SweepExpiredRefreshTokens(ctx context.Context) (int, error) {
	users, err := s.repo.ListWithRefreshToken(ctx)
	if err != nil {
		return 0, err
	}

	cleared := 0
	for _, user := range users {
		if _, err := s.tokens.Verify(*user.RefreshToken); err == nil {
			continue
		}
		if err := s.repo.SetRefreshToken(ctx, user.ID, nil); err != nil {
			return cleared, err
		}
		cleared++
	}
	return cleared, nil
}

func (s *Service) issuePair(ctx context.Context, userID string) (*TokenPair, error) {
	access, err := s.tokens.IssueAccess(userID)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.IssueRefresh(userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetRefreshToken(ctx, userID, &refresh); err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
