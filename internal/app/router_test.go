package app_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/app"
	"github.com/taskdeck/taskdeck/internal/auth"
	"github.com/taskdeck/taskdeck/internal/platform/httpx"
	"github.com/taskdeck/taskdeck/internal/tasks"
	_ "github.com/taskdeck/taskdeck/testing"
)

type emptyUserRepo struct{}

func (emptyUserRepo) CreateUser(ctx context.Context, user *auth.User) error { return nil }
func (emptyUserRepo) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	return nil, httpx.ErrNotFound
}
func (emptyUserRepo) FindByID(ctx context.Context, id string) (*auth.User, error) {
	return nil, httpx.ErrNotFound
}
func (emptyUserRepo) FindByRefreshToken(ctx context.Context, token string) (*auth.User, error) {
	return nil, httpx.ErrNotFound
}
func (emptyUserRepo) SetRefreshToken(ctx context.Context, userID string, token *string) error {
	return nil
}
func (emptyUserRepo) ListWithRefreshToken(ctx context.Context) ([]auth.User, error) {
	return nil, nil
}

type emptyTaskRepo struct{}

func (emptyTaskRepo) Create(ctx context.Context, task *tasks.Task) error { return nil }
func (emptyTaskRepo) ListByOwner(ctx context.Context, ownerID string) ([]tasks.Task, error) {
	return nil, nil
}
func (emptyTaskRepo) ListByOwnerAndStatus(ctx context.Context, ownerID string, status tasks.Status) ([]tasks.Task, error) {
	return nil, nil
}
func (emptyTaskRepo) Get(ctx context.Context, id, ownerID string) (*tasks.Task, error) {
	return nil, httpx.ErrNotFound
}
func (emptyTaskRepo) Update(ctx context.Context, task *tasks.Task) error {
	return httpx.ErrNotFound
}
func (emptyTaskRepo) Delete(ctx context.Context, id, ownerID string) error {
	return httpx.ErrNotFound
}

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &app.Config{AppEnv: "test", AppRequestTimeout: 5 * time.Second}

	tokens := auth.NewTokens("test-secret", time.Hour, 2*time.Hour)
	gate := auth.RequireAuth(tokens)
	authService := auth.NewService(emptyUserRepo{}, tokens, nil, 4)
	taskService := tasks.NewService(emptyTaskRepo{})

	return app.NewRouter(app.RouterParams{
		Logger:      logger,
		Config:      cfg,
		AuthHandler: auth.NewHandler(logger, authService, gate),
		TaskHandler: tasks.NewHandler(logger, taskService),
		Gate:        gate,
	})
}

func TestRouterHealthz(t *testing.T) {
	router := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	require.JSONEq(t, `{"status":"ok"}`, res.Body.String())
}

func TestRouterGuardsTaskRoutes(t *testing.T) {
	router := newRouter(t)

	for _, path := range []string{"/tasks", "/tasks/some-id", "/tasks/completed"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)

		require.Equal(t, http.StatusUnauthorized, res.Code, path)
	}
}

func TestRouterLeavesAuthRoutesOpen(t *testing.T) {
	router := newRouter(t)

	// Reaches the handler (which rejects the empty body), not the gate.
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusBadRequest, res.Code)
}
