package tasks_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/platform/httpx"
	"github.com/taskdeck/taskdeck/internal/tasks"
	_ "github.com/taskdeck/taskdeck/testing"
)

type memoryTaskRepo struct {
	tasks map[string]*tasks.Task
	order []string
}

func newMemoryTaskRepo() *memoryTaskRepo {
	return &memoryTaskRepo{tasks: make(map[string]*tasks.Task)}
}

func (r *memoryTaskRepo) Create(ctx context.Context, task *tasks.Task) error {
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	clone := *task
	r.tasks[task.ID] = &clone
	r.order = append(r.order, task.ID)
	return nil
}

func (r *memoryTaskRepo) ListByOwner(ctx context.Context, ownerID string) ([]tasks.Task, error) {
	var out []tasks.Task
	for _, id := range r.order {
		if task, ok := r.tasks[id]; ok && task.OwnerID == ownerID {
			out = append(out, *task)
		}
	}
	return out, nil
}

func (r *memoryTaskRepo) ListByOwnerAndStatus(ctx context.Context, ownerID string, status tasks.Status) ([]tasks.Task, error) {
	all, _ := r.ListByOwner(ctx, ownerID)
	var out []tasks.Task
	for _, task := range all {
		if task.Status == status {
			out = append(out, task)
		}
	}
	return out, nil
}

func (r *memoryTaskRepo) Get(ctx context.Context, id, ownerID string) (*tasks.Task, error) {
	task, ok := r.tasks[id]
	if !ok || task.OwnerID != ownerID {
		return nil, httpx.ErrNotFound
	}
	clone := *task
	return &clone, nil
}

func (r *memoryTaskRepo) Update(ctx context.Context, task *tasks.Task) error {
	current, ok := r.tasks[task.ID]
	if !ok || current.OwnerID != task.OwnerID {
		return httpx.ErrNotFound
	}
	task.UpdatedAt = time.Now()
	clone := *task
	r.tasks[task.ID] = &clone
	return nil
}

func (r *memoryTaskRepo) Delete(ctx context.Context, id, ownerID string) error {
	task, ok := r.tasks[id]
	if !ok || task.OwnerID != ownerID {
		return httpx.ErrNotFound
	}
	delete(r.tasks, id)
	return nil
}

func TestCreateGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	service := tasks.NewService(newMemoryTaskRepo())

	created, err := service.Create(ctx, "owner-a", "t", "d")
	require.NoError(t, err)
	require.Equal(t, tasks.StatusPending, created.Status)

	got, err := service.Get(ctx, "owner-a", created.ID)
	require.NoError(t, err)
	require.Equal(t, "t", got.Title)
	require.Equal(t, "d", got.Description)
	require.Equal(t, tasks.StatusPending, got.Status)
}

func TestCreateRequiresTitleAndDescription(t *testing.T) {
	ctx := context.Background()
	service := tasks.NewService(newMemoryTaskRepo())

	_, err := service.Create(ctx, "owner-a", "", "d")
	require.ErrorIs(t, err, httpx.ErrValidation)

	_, err = service.Create(ctx, "owner-a", "t", "")
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestOwnerScoping(t *testing.T) {
	ctx := context.Background()
	service := tasks.NewService(newMemoryTaskRepo())

	created, err := service.Create(ctx, "owner-a", "t", "d")
	require.NoError(t, err)

	// A different owner sees nothing, can change nothing.
	_, err = service.Get(ctx, "owner-b", created.ID)
	require.ErrorIs(t, err, httpx.ErrNotFound)

	title := "stolen"
	_, err = service.Update(ctx, "owner-b", created.ID, tasks.UpdateInput{Title: &title})
	require.ErrorIs(t, err, httpx.ErrNotFound)

	err = service.Delete(ctx, "owner-b", created.ID)
	require.ErrorIs(t, err, httpx.ErrNotFound)

	// The owner still sees the task untouched.
	got, err := service.Get(ctx, "owner-a", created.ID)
	require.NoError(t, err)
	require.Equal(t, "t", got.Title)
}

func TestListFiltersByOwnerAndStatus(t *testing.T) {
	ctx := context.Background()
	service := tasks.NewService(newMemoryTaskRepo())

	first, err := service.Create(ctx, "owner-a", "one", "d")
	require.NoError(t, err)
	_, err = service.Create(ctx, "owner-a", "two", "d")
	require.NoError(t, err)
	_, err = service.Create(ctx, "owner-b", "other", "d")
	require.NoError(t, err)

	_, err = service.UpdateStatus(ctx, "owner-a", first.ID, tasks.StatusCompleted)
	require.NoError(t, err)

	all, err := service.List(ctx, "owner-a")
	require.NoError(t, err)
	require.Len(t, all, 2)

	completed, err := service.ListByStatus(ctx, "owner-a", tasks.StatusCompleted)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	require.Equal(t, first.ID, completed[0].ID)
}

func TestUpdatePartialFields(t *testing.T) {
	ctx := context.Background()
	service := tasks.NewService(newMemoryTaskRepo())

	created, err := service.Create(ctx, "owner-a", "t", "d")
	require.NoError(t, err)

	title := "new title"
	updated, err := service.Update(ctx, "owner-a", created.ID, tasks.UpdateInput{Title: &title})
	require.NoError(t, err)
	require.Equal(t, "new title", updated.Title)
	require.Equal(t, "d", updated.Description)
	require.Equal(t, tasks.StatusPending, updated.Status)
}

func TestUpdateRejectsUnknownStatus(t *testing.T) {
	ctx := context.Background()
	service := tasks.NewService(newMemoryTaskRepo())

	created, err := service.Create(ctx, "owner-a", "t", "d")
	require.NoError(t, err)

	bogus := tasks.Status("bogus")
	_, err = service.Update(ctx, "owner-a", created.ID, tasks.UpdateInput{Status: &bogus})
	require.ErrorIs(t, err, httpx.ErrValidation)

	// The stored status is unchanged.
	got, err := service.Get(ctx, "owner-a", created.ID)
	require.NoError(t, err)
	require.Equal(t, tasks.StatusPending, got.Status)
}

func TestUpdateStatusDefaultsToCompleted(t *testing.T) {
	ctx := context.Background()
	service := tasks.NewService(newMemoryTaskRepo())

	created, err := service.Create(ctx, "owner-a", "t", "d")
	require.NoError(t, err)

	updated, err := service.UpdateStatus(ctx, "owner-a", created.ID, "")
	require.NoError(t, err)
	require.Equal(t, tasks.StatusCompleted, updated.Status)

	// Back to pending via an explicit status.
	updated, err = service.UpdateStatus(ctx, "owner-a", created.ID, tasks.StatusPending)
	require.NoError(t, err)
	require.Equal(t, tasks.StatusPending, updated.Status)

	_, err = service.UpdateStatus(ctx, "owner-a", created.ID, tasks.Status("bogus"))
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	service := tasks.NewService(newMemoryTaskRepo())

	created, err := service.Create(ctx, "owner-a", "t", "d")
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, "owner-a", created.ID))

	_, err = service.Get(ctx, "owner-a", created.ID)
	require.ErrorIs(t, err, httpx.ErrNotFound)

	err = service.Delete(ctx, "owner-a", created.ID)
	require.ErrorIs(t, err, httpx.ErrNotFound)
}
