package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

// TaskStore implements store.TaskStore with an ordered slice guarded by a
// single RWMutex. Every mutation holds the write lock for its whole
// read-modify-write sequence; reads return copies.
type TaskStore struct {
	mu    sync.RWMutex
	tasks []*domain.Task
}

var _ store.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates an empty TaskStore.
func NewTaskStore() *TaskStore {
	return &TaskStore{
		tasks: make([]*domain.Task, 0),
	}
}

// Add appends a copy of task to the store.
func (s *TaskStore) Add(ctx context.Context, task *domain.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if task == nil {
		return store.NewStoreError("task", "add", "task is nil", store.ErrInvalidEntity)
	}
	if err := task.Validate(); err != nil {
		return store.NewStoreError("task", "add", "validation failed",
			fmt.Errorf("%w: %w", store.ErrInvalidEntity, err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = append(s.tasks, task.Clone())

	logger.FromContext(ctx).Debug("task stored",
		"task_name", task.Name,
		"task_count", len(s.tasks))
	return nil
}

// Remove deletes every task named name.
func (s *TaskStore) Remove(ctx context.Context, name string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.Name != name {
			kept = append(kept, t)
		}
	}
	removed := len(s.tasks) - len(kept)
	// Clear the tail so removed tasks can be collected.
	clear(s.tasks[len(kept):])
	s.tasks = kept

	logger.FromContext(ctx).Debug("tasks deleted from store",
		"task_name", name,
		"removed", removed)
	return removed, nil
}

// FindByName returns a copy of the first task named name.
func (s *TaskStore) FindByName(ctx context.Context, name string) (*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(name)
	if i < 0 {
		return nil, store.ErrTaskNotFound
	}
	return s.tasks[i].Clone(), nil
}

// List returns copies of all tasks in storage order.
func (s *TaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshot(), nil
}

// SortBy stably reorders the stored tasks by key and returns the new order.
func (s *TaskStore) SortBy(ctx context.Context, key store.SortKey) ([]*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	store.SortTasks(s.tasks, key)

	logger.FromContext(ctx).Debug("stored order replaced",
		"sort_by", string(key),
		"task_count", len(s.tasks))
	return s.snapshot(), nil
}

// Update applies patch to the first task named name and rescores it.
// The patch is applied to a copy which replaces the stored task only if
// every field parses.
func (s *TaskStore) Update(
	ctx context.Context,
	name string,
	patch domain.TaskPatch,
	now time.Time,
) (*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(name)
	if i < 0 {
		return nil, store.ErrTaskNotFound
	}

	updated := s.tasks[i].Clone()
	if err := patch.ApplyTo(updated); err != nil {
		return nil, store.NewStoreError("task", "update", "patch rejected",
			fmt.Errorf("%w: %w", store.ErrUpdateFailed, err))
	}
	updated.Rescore(now)

	s.tasks[i] = updated

	logger.FromContext(ctx).Debug("stored task replaced",
		"task_name", name,
		"priority", updated.Priority)
	return updated.Clone(), nil
}

// indexOf returns the index of the first task named name, or -1.
// Callers must hold s.mu.
func (s *TaskStore) indexOf(name string) int {
	for i, t := range s.tasks {
		if t.Name == name {
			return i
		}
	}
	return -1
}

// snapshot copies the stored tasks. Callers must hold s.mu.
func (s *TaskStore) snapshot() []*domain.Task {
	out := make([]*domain.Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.Clone()
	}
	return out
}
