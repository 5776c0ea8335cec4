// Package tasks implements owner-scoped task CRUD. Every operation is
// filtered by the caller identity resolved by the auth gate; a task owned by
// someone else is indistinguishable from one that does not exist.
package tasks

import "time"

// Status enumerates the task lifecycle states.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

// Task is a unit of work owned by exactly one user.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	OwnerID     string    `json:"owner"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
