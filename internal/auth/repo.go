package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskdeck/taskdeck/internal/platform/httpx"
)

// Repository defines persistence operations for the auth module.
type Repository interface {
	CreateUser(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	FindByRefreshToken(ctx context.Context, token string) (*User, error)
	SetRefreshToken(ctx context.Context, userID string, token *string) error
	ListWithRefreshToken(ctx context.Context) ([]User, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const userColumns = `id, name, email, password_hash, refresh_token, created_at, updated_at`

// CreateUser inserts a new user row. A duplicate email fails with ErrEmailTaken.
func (r *PGRepository) CreateUser(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING created_at, updated_at`

	err := r.pool.QueryRow(ctx, query, user.ID, user.Name, user.Email, user.PasswordHash).
		Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrEmailTaken
		}
		return fmt.Errorf("auth: create user: %w", err)
	}
	return nil
}

// FindByEmail fetches a user by email.
func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

// FindByID fetches a user by id.
func (r *PGRepository) FindByID(ctx context.Context, id string) (*User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// FindByRefreshToken fetches the user whose stored refresh token matches
// exactly. Logout resolves its caller this way rather than by decoding claims.
func (r *PGRepository) FindByRefreshToken(ctx context.Context, token string) (*User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE refresh_token = $1`, token)
}

func (r *PGRepository) findOne(ctx context.Context, query string, arg any) (*User, error) {
	var user User
	var refresh pgtype.Text

	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&refresh,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, fmt.Errorf("auth: find user: %w", err)
	}
	if refresh.Valid {
		user.RefreshToken = &refresh.String
	}
	return &user, nil
}

// SetRefreshToken overwrites the stored refresh token; nil clears it. The
// single-statement UPDATE is what enforces one active refresh token per user.
func (r *PGRepository) SetRefreshToken(ctx context.Context, userID string, token *string) error {
	var value pgtype.Text
	if token != nil {
		value = pgtype.Text{String: *token, Valid: true}
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET refresh_token = $2, updated_at = NOW() WHERE id = $1`,
		userID, value)
	if err != nil {
		return fmt.Errorf("auth: set refresh token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// ListWithRefreshToken returns all users that currently hold a refresh token.
// Used by the sweep job to clear tokens past their validity window.
func (r *PGRepository) ListWithRefreshToken(ctx context.Context) ([]User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE refresh_token IS NOT NULL`)
	if err != nil {
		return nil, fmt.Errorf("auth: list refresh tokens: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var user User
		var refresh pgtype.Text
		if err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&user.PasswordHash,
			&refresh,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("auth: scan user: %w", err)
		}
		if refresh.Valid {
			user.RefreshToken = &refresh.String
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

var _ Repository = (*PGRepository)(nil)
