package api

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/phrazzld/tasks-api/internal/store"
)

// Success messages returned by the mutation endpoints.
const (
	MsgTaskAdded   = "Task added successfully!"
	MsgTaskUpdated = "Task updated successfully!"
	MsgTaskRemoved = "Task removed successfully!"
)

// Routes lists every endpoint served by TaskHandler, as reported by GET /.
var Routes = []string{
	"GET /",
	"GET /health",
	"POST /add_task",
	"GET /get_tasks",
	"POST /sort_tasks",
	"POST /update_task",
	"POST /remove_task",
	"GET /tasks/{name}",
}

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if taskService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("taskService cannot be nil for TaskHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// RegisterRoutes mounts the task endpoints on r.
func (h *TaskHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Index)
	r.Get("/health", h.Health)
	r.Post("/add_task", h.AddTask)
	r.Get("/get_tasks", h.GetTasks)
	r.Post("/sort_tasks", h.SortTasks)
	r.Post("/update_task", h.UpdateTask)
	r.Post("/remove_task", h.RemoveTask)
	r.Get("/tasks/{name}", h.GetTask)
}

// Index handles GET / with a short service descriptor.
func (h *TaskHandler) Index(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, ServiceInfoResponse{
		Service: "tasks-api",
		Routes:  Routes,
	})
}

// Health handles GET /health.
func (h *TaskHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// AddTask handles POST /add_task requests.
// It scores the submitted task and appends it to the list.
func (h *TaskHandler) AddTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req AddTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, MsgInvalidRequest, err)
		return
	}

	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	task, err := h.taskService.AddTask(r.Context(), service.AddTaskInput{
		Name:            req.Name,
		Deadline:        req.Deadline,
		ProjectRelated:  *req.ProjectRelated,
		IsPersonal:      req.IsPersonal,
		EstimatedEffort: string(*req.EstimatedEffort),
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to add task")
		return
	}

	log.Debug("task added via API",
		slog.String("task_name", task.Name),
		slog.Int("priority", task.Priority))
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: MsgTaskAdded})
}

// GetTasks handles GET /get_tasks requests.
// Tasks are returned in their current stored order.
func (h *TaskHandler) GetTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.ListTasks(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tasks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// SortTasks handles POST /sort_tasks requests.
// The body is optional and sort_by defaults to priority. The new order
// persists for later GET /get_tasks calls.
func (h *TaskHandler) SortTasks(w http.ResponseWriter, r *http.Request) {
	var req SortTasksRequest
	if err := shared.DecodeJSON(r, &req); err != nil && !errors.Is(err, shared.ErrEmptyBody) {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, MsgInvalidRequest, err)
		return
	}

	// An explicit null counts as absent and sorts by priority, unlike a
	// plain dictionary lookup which would hand back null and fall through to
	// the name ordering.
	key := store.SortByPriority
	if req.SortBy != nil {
		key = store.SortKey(*req.SortBy)
	}

	tasks, err := h.taskService.SortTasks(r.Context(), key)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to sort tasks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// UpdateTask handles POST /update_task requests.
// Only the supplied fields change and the task is always rescored, so a
// supplied priority is overwritten by the computed one.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, MsgInvalidRequest, err)
		return
	}

	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), req.Name, req.Patch())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update task")
		return
	}

	log.Debug("task updated via API",
		slog.String("task_name", task.Name),
		slog.Int("priority", task.Priority))
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: MsgTaskUpdated})
}

// RemoveTask handles POST /remove_task requests.
// Every task with the given name is removed; removing a missing name is not
// an error.
func (h *TaskHandler) RemoveTask(w http.ResponseWriter, r *http.Request) {
	var req RemoveTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, MsgInvalidRequest, err)
		return
	}

	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	removed, err := h.taskService.RemoveTask(r.Context(), req.Name)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to remove task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, RemoveTaskResponse{
		Message: MsgTaskRemoved,
		Removed: removed,
	})
}

// GetTask handles GET /tasks/{name} requests.
// It returns the first task with the given name.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	name, err := pathParam(r, "name")
	if err != nil || name == "" {
		log.Warn("invalid task name in URL path", slog.String("name", chi.URLParam(r, "name")))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid name: required field")
		return
	}

	task, err := h.taskService.GetTask(r.Context(), name)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// pathParam returns a decoded URL parameter. chi matches against RawPath
// when the request has one, so parameters may still be escaped.
func pathParam(r *http.Request, key string) (string, error) {
	value := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return value, nil
	}
	return url.PathUnescape(value)
}
