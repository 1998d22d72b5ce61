package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

// Clock returns the current instant used when scoring tasks.
type Clock func() time.Time

// AddTaskInput carries the raw client values for a new task.
type AddTaskInput struct {
	Name            string
	Deadline        string
	ProjectRelated  bool
	IsPersonal      bool
	EstimatedEffort string
}

// TaskService provides task-related operations
type TaskService interface {
	// AddTask parses and scores a new task and appends it to the store.
	// Returns an error wrapping domain.ErrInvalidEffort or
	// domain.ErrInvalidDeadline for unparsable input.
	AddTask(ctx context.Context, in AddTaskInput) (*domain.Task, error)

	// ListTasks returns all tasks in current storage order.
	ListTasks(ctx context.Context) ([]*domain.Task, error)

	// SortTasks reorders the stored tasks by key and returns them.
	SortTasks(ctx context.Context, key store.SortKey) ([]*domain.Task, error)

	// GetTask returns the first task with the given name.
	GetTask(ctx context.Context, name string) (*domain.Task, error)

	// UpdateTask applies a partial update to the first task with the given
	// name and rescores it.
	UpdateTask(ctx context.Context, name string, patch domain.TaskPatch) (*domain.Task, error)

	// RemoveTask deletes all tasks with the given name.
	RemoveTask(ctx context.Context, name string) (int, error)
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	tasks  store.TaskStore
	clock  Clock
	logger *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if the store is nil. A nil clock means time.Now and a
// nil logger means slog.Default().
func NewTaskService(tasks store.TaskStore, clock Clock, logger *slog.Logger) (TaskService, error) {
	if tasks == nil {
		return nil, domain.NewValidationError("tasks", "cannot be nil", domain.ErrValidation)
	}
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		tasks:  tasks,
		clock:  clock,
		logger: logger.With(slog.String("component", "task_service")),
	}, nil
}

// AddTask implements TaskService.
func (s *taskServiceImpl) AddTask(ctx context.Context, in AddTaskInput) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	effort, err := domain.ParseEffort(in.EstimatedEffort)
	if err != nil {
		log.Debug("rejected task effort", "task_name", in.Name, "error", err)
		return nil, NewTaskServiceError("add", "invalid estimated effort", err)
	}

	deadline, err := domain.ParseDeadline(in.Deadline)
	if err != nil {
		log.Debug("rejected task deadline", "task_name", in.Name, "error", err)
		return nil, NewTaskServiceError("add", "invalid deadline", err)
	}

	task, err := domain.NewTask(in.Name, deadline, in.ProjectRelated, in.IsPersonal, effort, s.clock())
	if err != nil {
		return nil, NewTaskServiceError("add", "invalid task", err)
	}

	if err := s.tasks.Add(ctx, task); err != nil {
		return nil, NewTaskServiceError("add", "failed to store task", err)
	}

	log.Info("task added",
		"task_name", task.Name,
		"priority", task.Priority,
		"deadline", task.Deadline.String())
	return task, nil
}

// ListTasks implements TaskService.
func (s *taskServiceImpl) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, NewTaskServiceError("list", "failed to list tasks", err)
	}
	return tasks, nil
}

// SortTasks implements TaskService.
func (s *taskServiceImpl) SortTasks(ctx context.Context, key store.SortKey) ([]*domain.Task, error) {
	tasks, err := s.tasks.SortBy(ctx, key)
	if err != nil {
		return nil, NewTaskServiceError("sort", "failed to sort tasks", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("tasks sorted",
		"sort_by", string(key),
		"task_count", len(tasks))
	return tasks, nil
}

// GetTask implements TaskService.
func (s *taskServiceImpl) GetTask(ctx context.Context, name string) (*domain.Task, error) {
	task, err := s.tasks.FindByName(ctx, name)
	if err != nil {
		return nil, NewTaskServiceError("get", "failed to find task", err)
	}
	return task, nil
}

// UpdateTask implements TaskService.
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	name string,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if patch.Priority != nil {
		// Every update rescores, so a caller supplied priority never sticks.
		log.Debug("update carries explicit priority that will be recomputed",
			"task_name", name,
			"requested_priority", *patch.Priority)
	}

	task, err := s.tasks.Update(ctx, name, patch, s.clock())
	if err != nil {
		return nil, NewTaskServiceError("update", "failed to update task", err)
	}

	log.Info("task updated",
		"task_name", task.Name,
		"priority", task.Priority)
	return task, nil
}

// RemoveTask implements TaskService.
func (s *taskServiceImpl) RemoveTask(ctx context.Context, name string) (int, error) {
	removed, err := s.tasks.Remove(ctx, name)
	if err != nil {
		return 0, NewTaskServiceError("remove", "failed to remove task", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("tasks removed",
		"task_name", name,
		"removed", removed)
	return removed, nil
}
