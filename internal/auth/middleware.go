package auth

import (
	"net/http"
	"strings"

	"github.com/taskdeck/taskdeck/internal/platform/httpx"
)

const bearerPrefix = "Bearer "

// RequireAuth returns middleware that verifies the bearer access token and
// places the resolved subject on the request context. Access tokens are
// checked statelessly; the persisted refresh token is never consulted here.
func RequireAuth(tokens *Tokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, bearerPrefix) {
				httpx.RespondError(w, ErrInvalidToken)
				return
			}

			subject, err := tokens.Verify(strings.TrimPrefix(header, bearerPrefix))
			if err != nil {
				httpx.RespondError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithSubject(r.Context(), subject)))
		})
	}
}
