package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskdeck/taskdeck/internal/platform/httpx"
)

// Repository defines persistence operations for tasks. Every method that
// touches a single task takes the owner id alongside the task id.
type Repository interface {
	Create(ctx context.Context, task *Task) error
	ListByOwner(ctx context.Context, ownerID string) ([]Task, error)
	ListByOwnerAndStatus(ctx context.Context, ownerID string, status Status) ([]Task, error)
	Get(ctx context.Context, id, ownerID string) (*Task, error)
	Update(ctx context.Context, task *Task) error
	Delete(ctx context.Context, id, ownerID string) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const taskColumns = `id, title, description, status, owner_id, created_at, updated_at`

// Create inserts a new task row.
func (r *PGRepository) Create(ctx context.Context, task *Task) error {
	query := `
		INSERT INTO tasks (id, title, description, status, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		task.ID, task.Title, task.Description, task.Status, task.OwnerID,
	).Scan(&task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return fmt.Errorf("tasks: create: %w", err)
	}
	return nil
}

// ListByOwner returns all tasks owned by ownerID in insertion order.
func (r *PGRepository) ListByOwner(ctx context.Context, ownerID string) ([]Task, error) {
	return r.list(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE owner_id = $1 ORDER BY created_at`,
		ownerID)
}

// ListByOwnerAndStatus returns the owner's tasks filtered by status.
func (r *PGRepository) ListByOwnerAndStatus(ctx context.Context, ownerID string, status Status) ([]Task, error) {
	return r.list(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE owner_id = $1 AND status = $2 ORDER BY created_at`,
		ownerID, status)
}

func (r *PGRepository) list(ctx context.Context, query string, args ...any) ([]Task, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("tasks: list: %w", err)
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		var task Task
		if err := rows.Scan(
			&task.ID,
			&task.Title,
			&task.Description,
			&task.Status,
			&task.OwnerID,
			&task.CreatedAt,
			&task.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("tasks: scan: %w", err)
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

// Get fetches a single task matching (id, owner).
func (r *PGRepository) Get(ctx context.Context, id, ownerID string) (*Task, error) {
	var task Task
	err := r.pool.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	).Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.OwnerID,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, fmt.Errorf("tasks: get: %w", err)
	}
	return &task, nil
}

// Update replaces title, description, and status of the matching-owned task.
func (r *PGRepository) Update(ctx context.Context, task *Task) error {
	query := `
		UPDATE tasks
		SET title = $3, description = $4, status = $5, updated_at = NOW()
		WHERE id = $1 AND owner_id = $2
		RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query,
		task.ID, task.OwnerID, task.Title, task.Description, task.Status,
	).Scan(&task.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return httpx.ErrNotFound
		}
		return fmt.Errorf("tasks: update: %w", err)
	}
	return nil
}

// Delete removes the matching-owned task.
func (r *PGRepository) Delete(ctx context.Context, id, ownerID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM tasks WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("tasks: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
