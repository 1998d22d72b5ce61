package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Task is a single tracked task. Priority and Note are derived from the
// other fields by Score and are refreshed by Rescore; they are never set
// independently.
type Task struct {
	Name            string `json:"name"             yaml:"name"`
	Deadline        Date   `json:"deadline"         yaml:"deadline"`
	ProjectRelated  bool   `json:"project_related"  yaml:"project_related"`
	EstimatedEffort int    `json:"estimated_effort" yaml:"estimated_effort"`
	Priority        int    `json:"priority"         yaml:"priority"`
	Note            string `json:"ai_note"          yaml:"ai_note"`
	IsPersonal      bool   `json:"is_personal"      yaml:"is_personal"`
}

// NewTask creates a scored Task.
// Returns an error if validation fails.
func NewTask(
	name string,
	deadline Date,
	projectRelated bool,
	isPersonal bool,
	effort int,
	now time.Time,
) (*Task, error) {
	task := &Task{
		Name:            name,
		Deadline:        deadline,
		ProjectRelated:  projectRelated,
		IsPersonal:      isPersonal,
		EstimatedEffort: effort,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	task.Rescore(now)
	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.Name == "" {
		return NewValidationError("name", "is required", ErrEmptyTaskName)
	}
	if t.EstimatedEffort < 0 {
		return NewValidationError("estimated_effort", "must be non-negative", ErrInvalidEffort)
	}
	if t.Deadline.IsZero() {
		return NewValidationError("deadline", "is required", ErrInvalidDeadline)
	}
	return nil
}

// Rescore recomputes Priority and Note as of now.
func (t *Task) Rescore(now time.Time) {
	t.Priority, t.Note = Score(t, now)
}

// Clone returns a copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	return &c
}

// ParseEffort parses an effort estimate. Surrounding whitespace is ignored.
// Returns an error wrapping ErrInvalidEffort if the value is not a
// non-negative integer.
func ParseEffort(s string) (int, error) {
	effort, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidEffort, s)
	}
	if effort < 0 {
		return 0, fmt.Errorf("%w: %d is negative", ErrInvalidEffort, effort)
	}
	return effort, nil
}

// TaskPatch is a partial update of a task. Nil fields are left unchanged.
// Deadline and EstimatedEffort carry the raw client values and are parsed
// when the patch is applied.
type TaskPatch struct {
	Priority        *int
	Deadline        *string
	EstimatedEffort *string
}

// ApplyTo writes the present fields of the patch into t. On error t may be
// partially modified, so callers apply patches to a copy.
//
// A supplied Priority is written as given; it does not survive the Rescore
// that follows every update.
func (p TaskPatch) ApplyTo(t *Task) error {
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Deadline != nil {
		deadline, err := ParseDeadline(*p.Deadline)
		if err != nil {
			return err
		}
		t.Deadline = deadline
	}
	if p.EstimatedEffort != nil {
		effort, err := ParseEffort(*p.EstimatedEffort)
		if err != nil {
			return err
		}
		t.EstimatedEffort = effort
	}
	return nil
}
