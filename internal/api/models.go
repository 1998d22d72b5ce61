package api

import (
	"bytes"
	"encoding/json"

	"github.com/phrazzld/tasks-api/internal/domain"
)

// EffortValue holds the raw estimated_effort value from a request body.
// Clients may send it as a JSON number or as a string; both are kept as text
// and parsed by the service, which rejects anything that is not a
// non-negative integer.
type EffortValue string

// UnmarshalJSON implements json.Unmarshaler.
func (e *EffortValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*e = EffortValue(s)
		return nil
	}
	*e = EffortValue(data)
	return nil
}

// Raw returns the value as a string pointer, nil when absent.
func (e *EffortValue) Raw() *string {
	if e == nil {
		return nil
	}
	s := string(*e)
	return &s
}

// AddTaskRequest defines the payload for POST /add_task.
type AddTaskRequest struct {
	Name            string       `json:"name"             validate:"required"`
	Deadline        string       `json:"deadline"         validate:"required"`
	ProjectRelated  *bool        `json:"project_related"  validate:"required"`
	EstimatedEffort *EffortValue `json:"estimated_effort" validate:"required"`
	IsPersonal      bool         `json:"is_personal"`
}

// UpdateTaskRequest defines the payload for POST /update_task.
// Omitted or null fields are left unchanged. Priority accepts any JSON value
// because every update rescores the task; only an integer is passed on.
type UpdateTaskRequest struct {
	Name            string          `json:"name"             validate:"required"`
	Priority        json.RawMessage `json:"priority"`
	Deadline        *string         `json:"deadline"`
	EstimatedEffort *EffortValue    `json:"estimated_effort"`
}

// Patch converts the request into a domain.TaskPatch.
func (r UpdateTaskRequest) Patch() domain.TaskPatch {
	return domain.TaskPatch{
		Priority:        r.priority(),
		Deadline:        r.Deadline,
		EstimatedEffort: r.EstimatedEffort.Raw(),
	}
}

// priority returns the requested priority when it is a JSON integer.
func (r UpdateTaskRequest) priority() *int {
	if len(r.Priority) == 0 {
		return nil
	}
	var p *int
	if err := json.Unmarshal(r.Priority, &p); err != nil {
		return nil
	}
	return p
}

// SortTasksRequest defines the payload for POST /sort_tasks. The whole body
// is optional; a missing sort_by means priority.
type SortTasksRequest struct {
	SortBy *string `json:"sort_by"`
}

// RemoveTaskRequest defines the payload for POST /remove_task.
type RemoveTaskRequest struct {
	Name string `json:"name" validate:"required"`
}

// TaskResponse is the client view of a task.
type TaskResponse struct {
	Name            string `json:"name"`
	Deadline        string `json:"deadline"`
	ProjectRelated  bool   `json:"project_related"`
	EstimatedEffort int    `json:"estimated_effort"`
	Priority        int    `json:"priority"`
	AINote          string `json:"ai_note"`
	IsPersonal      bool   `json:"is_personal"`
}

// TasksResponse wraps a task listing.
type TasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
}

// MessageResponse is the body of every successful mutation.
type MessageResponse struct {
	Message string `json:"message"`
}

// RemoveTaskResponse reports how many tasks a removal deleted.
type RemoveTaskResponse struct {
	Message string `json:"message"`
	Removed int    `json:"removed"`
}

// ServiceInfoResponse describes the service at GET /.
type ServiceInfoResponse struct {
	Service string   `json:"service"`
	Routes  []string `json:"routes"`
}

func taskToResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		Name:            t.Name,
		Deadline:        t.Deadline.String(),
		ProjectRelated:  t.ProjectRelated,
		EstimatedEffort: t.EstimatedEffort,
		Priority:        t.Priority,
		AINote:          t.Note,
		IsPersonal:      t.IsPersonal,
	}
}

func tasksToResponse(tasks []*domain.Task) TasksResponse {
	resp := TasksResponse{Tasks: make([]TaskResponse, 0, len(tasks))}
	for _, t := range tasks {
		resp.Tasks = append(resp.Tasks, taskToResponse(t))
	}
	return resp
}
