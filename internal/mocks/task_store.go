package mocks

import (
	"context"
	"time"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing
type MockTaskStore struct {
	// Custom behavior functions
	AddFn        func(ctx context.Context, task *domain.Task) error
	RemoveFn     func(ctx context.Context, name string) (int, error)
	FindByNameFn func(ctx context.Context, name string) (*domain.Task, error)
	ListFn       func(ctx context.Context) ([]*domain.Task, error)
	SortByFn     func(ctx context.Context, key store.SortKey) ([]*domain.Task, error)
	UpdateFn     func(ctx context.Context, name string, patch domain.TaskPatch, now time.Time) (*domain.Task, error)

	// Default return values
	Task         *domain.Task
	Tasks        []*domain.Task
	Removed      int
	DefaultError error
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// Add implements the TaskStore.Add method
func (m *MockTaskStore) Add(ctx context.Context, task *domain.Task) error {
	if m.AddFn != nil {
		return m.AddFn(ctx, task)
	}
	return m.DefaultError
}

// Remove implements the TaskStore.Remove method
func (m *MockTaskStore) Remove(ctx context.Context, name string) (int, error) {
	if m.RemoveFn != nil {
		return m.RemoveFn(ctx, name)
	}
	return m.Removed, m.DefaultError
}

// FindByName implements the TaskStore.FindByName method
func (m *MockTaskStore) FindByName(ctx context.Context, name string) (*domain.Task, error) {
	if m.FindByNameFn != nil {
		return m.FindByNameFn(ctx, name)
	}
	return m.Task, m.DefaultError
}

// List implements the TaskStore.List method
func (m *MockTaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return m.Tasks, m.DefaultError
}

// SortBy implements the TaskStore.SortBy method
func (m *MockTaskStore) SortBy(ctx context.Context, key store.SortKey) ([]*domain.Task, error) {
	if m.SortByFn != nil {
		return m.SortByFn(ctx, key)
	}
	return m.Tasks, m.DefaultError
}

// Update implements the TaskStore.Update method
func (m *MockTaskStore) Update(
	ctx context.Context,
	name string,
	patch domain.TaskPatch,
	now time.Time,
) (*domain.Task, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, name, patch, now)
	}
	return m.Task, m.DefaultError
}
