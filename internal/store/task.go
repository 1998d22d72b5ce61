package store

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/phrazzld/tasks-api/internal/domain"
)

// SortKey selects the ordering applied by TaskStore.SortBy.
type SortKey string

// Recognized sort keys. Any other value sorts by name.
const (
	SortByPriority SortKey = "priority"
	SortByDeadline SortKey = "deadline"
	SortByName     SortKey = "name"
)

// TaskStore defines the interface for task storage.
//
// Task names are the lookup key but are not required to be unique. Lookups
// and updates act on the first match in storage order; removal deletes every
// match.
type TaskStore interface {
	// Add appends a task to the end of the stored sequence.
	// Returns ErrInvalidEntity if the task fails validation.
	Add(ctx context.Context, task *domain.Task) error

	// Remove deletes all tasks with the given name and reports how many were
	// removed. Removing an unknown name is not an error.
	Remove(ctx context.Context, name string) (int, error)

	// FindByName returns a copy of the first task with the given name.
	// Returns ErrTaskNotFound if no task matches.
	FindByName(ctx context.Context, name string) (*domain.Task, error)

	// List returns copies of all tasks in current storage order.
	List(ctx context.Context) ([]*domain.Task, error)

	// SortBy reorders the stored sequence in place using a stable sort and
	// returns copies of the tasks in their new order.
	SortBy(ctx context.Context, key SortKey) ([]*domain.Task, error)

	// Update applies patch to the first task with the given name and rescores
	// it as of now, discarding any priority carried by the patch.
	// Returns ErrTaskNotFound if no task matches. If the patch cannot be
	// applied the stored task is left unchanged and the error wraps
	// domain.ErrInvalidEffort or domain.ErrInvalidDeadline.
	Update(ctx context.Context, name string, patch domain.TaskPatch, now time.Time) (*domain.Task, error)
}

// SortTasks stably sorts tasks in place by key.
//
//   - SortByPriority: ascending priority, then ascending deadline, then
//     project-related tasks first
//   - SortByDeadline: ascending deadline
//   - anything else: ascending name
func SortTasks(tasks []*domain.Task, key SortKey) {
	slices.SortStableFunc(tasks, compareFunc(key))
}

func compareFunc(key SortKey) func(a, b *domain.Task) int {
	switch key {
	case SortByPriority:
		return func(a, b *domain.Task) int {
			if c := cmp.Compare(a.Priority, b.Priority); c != 0 {
				return c
			}
			if c := a.Deadline.Compare(b.Deadline); c != 0 {
				return c
			}
			return compareProjectFirst(a.ProjectRelated, b.ProjectRelated)
		}
	case SortByDeadline:
		return func(a, b *domain.Task) int {
			return a.Deadline.Compare(b.Deadline)
		}
	default:
		return func(a, b *domain.Task) int {
			return cmp.Compare(a.Name, b.Name)
		}
	}
}

// compareProjectFirst orders project-related tasks before the rest.
func compareProjectFirst(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return -1
	default:
		return 1
	}
}
