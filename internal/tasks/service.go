package tasks

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck/internal/platform/httpx"
)

// Service wraps task business rules around the repository.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// UpdateInput carries the optional fields of a partial update. Nil fields
// keep their current value.
type UpdateInput struct {
	Title       *string
	Description *string
	Status      *Status
}

// Create stores a new pending task for the owner.
func (s *Service) Create(ctx context.Context, ownerID, title, description string) (*Task, error) {
	if title == "" || description == "" {
		return nil, fmt.Errorf("title and description are required: %w", httpx.ErrValidation)
	}

	task := &Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Status:      StatusPending,
		OwnerID:     ownerID,
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// List returns all of the owner's tasks.
func (s *Service) List(ctx context.Context, ownerID string) ([]Task, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// ListByStatus returns the owner's tasks in the given status.
func (s *Service) ListByStatus(ctx context.Context, ownerID string, status Status) ([]Task, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("unknown status %q: %w", status, httpx.ErrValidation)
	}
	return s.repo.ListByOwnerAndStatus(ctx, ownerID, status)
}

// Get returns the owner's task with the given id.
func (s *Service) Get(ctx context.Context, ownerID, id string) (*Task, error) {
	return s.repo.Get(ctx, id, ownerID)
}

// Update applies the provided fields to the owner's task. An unknown status
// fails validation before anything is written.
func (s *Service) Update(ctx context.Context, ownerID, id string, input UpdateInput) (*Task, error) {
	if input.Status != nil && !input.Status.Valid() {
		return nil, fmt.Errorf("unknown status %q: %w", *input.Status, httpx.ErrValidation)
	}

	task, err := s.repo.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if task.Title == "" || task.Description == "" {
		return nil, fmt.Errorf("title and description are required: %w", httpx.ErrValidation)
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateStatus transitions the owner's task to the given status, defaulting
// to completed when none is provided.
func (s *Service) UpdateStatus(ctx context.Context, ownerID, id string, status Status) (*Task, error) {
	if status == "" {
		status = StatusCompleted
	}
	return s.Update(ctx, ownerID, id, UpdateInput{Status: &status})
}

// Delete removes the owner's task.
func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	return s.repo.Delete(ctx, id, ownerID)
}
