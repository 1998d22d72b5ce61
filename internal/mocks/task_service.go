package mocks

import (
	"context"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/phrazzld/tasks-api/internal/store"
)

// MockTaskService implements service.TaskService for testing
type MockTaskService struct {
	// Custom behavior functions
	AddTaskFn    func(ctx context.Context, in service.AddTaskInput) (*domain.Task, error)
	ListTasksFn  func(ctx context.Context) ([]*domain.Task, error)
	SortTasksFn  func(ctx context.Context, key store.SortKey) ([]*domain.Task, error)
	GetTaskFn    func(ctx context.Context, name string) (*domain.Task, error)
	UpdateTaskFn func(ctx context.Context, name string, patch domain.TaskPatch) (*domain.Task, error)
	RemoveTaskFn func(ctx context.Context, name string) (int, error)

	// Default return values
	Task         *domain.Task
	Tasks        []*domain.Task
	Removed      int
	DefaultError error
}

var _ service.TaskService = (*MockTaskService)(nil)

// AddTask implements the TaskService.AddTask method
func (m *MockTaskService) AddTask(ctx context.Context, in service.AddTaskInput) (*domain.Task, error) {
	if m.AddTaskFn != nil {
		return m.AddTaskFn(ctx, in)
	}
	return m.Task, m.DefaultError
}

// ListTasks implements the TaskService.ListTasks method
func (m *MockTaskService) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx)
	}
	return m.Tasks, m.DefaultError
}

// SortTasks implements the TaskService.SortTasks method
func (m *MockTaskService) SortTasks(ctx context.Context, key store.SortKey) ([]*domain.Task, error) {
	if m.SortTasksFn != nil {
		return m.SortTasksFn(ctx, key)
	}
	return m.Tasks, m.DefaultError
}

// GetTask implements the TaskService.GetTask method
func (m *MockTaskService) GetTask(ctx context.Context, name string) (*domain.Task, error) {
	if m.GetTaskFn != nil {
		return m.GetTaskFn(ctx, name)
	}
	return m.Task, m.DefaultError
}

// UpdateTask implements the TaskService.UpdateTask method
func (m *MockTaskService) UpdateTask(
	ctx context.Context,
	name string,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	if m.UpdateTaskFn != nil {
		return m.UpdateTaskFn(ctx, name, patch)
	}
	return m.Task, m.DefaultError
}

// RemoveTask implements the TaskService.RemoveTask method
func (m *MockTaskService) RemoveTask(ctx context.Context, name string) (int, error) {
	if m.RemoveTaskFn != nil {
		return m.RemoveTaskFn(ctx, name)
	}
	return m.Removed, m.DefaultError
}
