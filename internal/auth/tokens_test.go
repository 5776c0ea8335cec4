package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/auth"
	_ "github.com/taskdeck/taskdeck/testing"
)

func TestTokensRoundTrip(t *testing.T) {
	tokens := auth.NewTokens("secret", time.Hour, 2*time.Hour)

	access, err := tokens.IssueAccess("user-1")
	require.NoError(t, err)
	refresh, err := tokens.IssueRefresh("user-1")
	require.NoError(t, err)
	require.NotEqual(t, access, refresh)

	subject, err := tokens.Verify(access)
	require.NoError(t, err)
	require.Equal(t, "user-1", subject)

	subject, err = tokens.Verify(refresh)
	require.NoError(t, err)
	require.Equal(t, "user-1", subject)
}

func TestTokensUniquePerIssue(t *testing.T) {
	tokens := auth.NewTokens("secret", time.Hour, 2*time.Hour)

	first, err := tokens.IssueRefresh("user-1")
	require.NoError(t, err)
	second, err := tokens.IssueRefresh("user-1")
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestTokensVerifyExpired(t *testing.T) {
	tokens := auth.NewTokens("secret", -time.Minute, -time.Minute)

	access, err := tokens.IssueAccess("user-1")
	require.NoError(t, err)

	_, err = tokens.Verify(access)
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokensVerifyTampered(t *testing.T) {
	tokens := auth.NewTokens("secret", time.Hour, 2*time.Hour)

	access, err := tokens.IssueAccess("user-1")
	require.NoError(t, err)

	_, err = tokens.Verify(access + "x")
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokensVerifyWrongSecret(t *testing.T) {
	issuer := auth.NewTokens("secret-a", time.Hour, 2*time.Hour)
	verifier := auth.NewTokens("secret-b", time.Hour, 2*time.Hour)

	access, err := issuer.IssueAccess("user-1")
	require.NoError(t, err)

	_, err = verifier.Verify(access)
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokensVerifyGarbage(t *testing.T) {
	tokens := auth.NewTokens("secret", time.Hour, 2*time.Hour)

	for _, input := range []string{"", "garbage", "a.b.c"} {
		_, err := tokens.Verify(input)
		require.ErrorIs(t, err, auth.ErrInvalidToken)
	}
}
