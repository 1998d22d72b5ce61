package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/tasks-api/internal/api/middleware"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/mocks"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/platform/memory"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

type testEnv struct {
	router http.Handler
	tasks  *memory.TaskStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	_, log := logger.SetupTestLogger(t)

	tasks := memory.NewTaskStore()
	svc, err := service.NewTaskService(tasks, fixedClock, log)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(middleware.NewTraceMiddleware(log))
	NewTaskHandler(svc, log).RegisterRoutes(r)

	return &testEnv{router: r, tasks: tasks}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) mustAdd(t *testing.T, body string) {
	t.Helper()
	w := e.do(t, http.MethodPost, "/add_task", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func decodeTasks(t *testing.T, w *httptest.ResponseRecorder) []TaskResponse {
	t.Helper()
	var resp TasksResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Tasks
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func taskNames(tasks []TaskResponse) []string {
	names := make([]string, 0, len(tasks))
	for _, t := range tasks {
		names = append(names, t.Name)
	}
	return names
}

func TestTaskHandler_IndexAndHealth(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var info ServiceInfoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "tasks-api", info.Service)
	assert.Contains(t, info.Routes, "POST /add_task")

	w = env.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestTaskHandler_AddTask(t *testing.T) {
	tests := []struct {
		name            string
		body            string
		expectedStatus  int
		expectedMessage string
		expectedTask    *TaskResponse
	}{
		{
			name:            "project related task is top priority",
			body:            `{"name":"Ship release","deadline":"2025-03-20","project_related":true,"estimated_effort":3}`,
			expectedStatus:  http.StatusOK,
			expectedMessage: MsgTaskAdded,
			expectedTask: &TaskResponse{
				Name:            "Ship release",
				Deadline:        "2025-03-20",
				ProjectRelated:  true,
				EstimatedEffort: 3,
				Priority:        domain.PriorityTop,
				AINote:          domain.NoteTopPriority,
			},
		},
		{
			name:            "effort as string",
			body:            `{"name":"Groceries","deadline":"2025-03-11","project_related":false,"estimated_effort":"2","is_personal":true}`,
			expectedStatus:  http.StatusOK,
			expectedMessage: MsgTaskAdded,
			expectedTask: &TaskResponse{
				Name:            "Groceries",
				Deadline:        "2025-03-11",
				EstimatedEffort: 2,
				Priority:        domain.PriorityHigh,
				AINote:          domain.NoteUrgentPersonal,
				IsPersonal:      true,
			},
		},
		{
			name:            "non numeric effort",
			body:            `{"name":"X","deadline":"2025-03-20","project_related":false,"estimated_effort":"abc"}`,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: MsgInvalidEffort,
		},
		{
			name:            "fractional effort",
			body:            `{"name":"X","deadline":"2025-03-20","project_related":false,"estimated_effort":3.5}`,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: MsgInvalidEffort,
		},
		{
			name:            "boolean effort",
			body:            `{"name":"X","deadline":"2025-03-20","project_related":false,"estimated_effort":true}`,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: MsgInvalidEffort,
		},
		{
			name:            "negative effort",
			body:            `{"name":"X","deadline":"2025-03-20","project_related":false,"estimated_effort":-1}`,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: MsgInvalidEffort,
		},
		{
			name:            "unparsable deadline",
			body:            `{"name":"X","deadline":"next friday","project_related":false,"estimated_effort":1}`,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: MsgInvalidDeadline,
		},
		{
			name:            "missing project_related",
			body:            `{"name":"X","deadline":"2025-03-20","estimated_effort":1}`,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Invalid project_related: required field",
		},
		{
			name:            "missing name",
			body:            `{"deadline":"2025-03-20","project_related":false,"estimated_effort":1}`,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Invalid name: required field",
		},
		{
			name:            "malformed json",
			body:            `{"name":`,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: MsgInvalidRequest,
		},
		{
			name:            "empty body",
			body:            "",
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: MsgInvalidRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)

			w := env.do(t, http.MethodPost, "/add_task", tc.body)
			assert.Equal(t, tc.expectedStatus, w.Code, w.Body.String())
			assert.Equal(t, tc.expectedMessage, decodeError(t, w)["message"])

			listed := decodeTasks(t, env.do(t, http.MethodGet, "/get_tasks", ""))
			if tc.expectedTask == nil {
				assert.Empty(t, listed, "rejected task must not be stored")
				assert.NotEmpty(t, decodeError(t, w)["trace_id"])
				return
			}
			require.Len(t, listed, 1)
			assert.Equal(t, *tc.expectedTask, listed[0])
		})
	}
}

func TestTaskHandler_GetTasksEmpty(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/get_tasks", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"tasks":[]}`, w.Body.String())
}

func TestTaskHandler_SortTasks(t *testing.T) {
	env := newTestEnv(t)
	env.mustAdd(t, `{"name":"Alpha","deadline":"2025-03-20","project_related":false,"estimated_effort":1}`)
	env.mustAdd(t, `{"name":"Charlie","deadline":"2025-03-25","project_related":true,"estimated_effort":1}`)
	env.mustAdd(t, `{"name":"Bravo","deadline":"2025-03-11","project_related":false,"estimated_effort":1}`)

	t.Run("empty body sorts by priority", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/sort_tasks", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"Charlie", "Bravo", "Alpha"}, taskNames(decodeTasks(t, w)))
	})

	t.Run("by name persists", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/sort_tasks", `{"sort_by":"name"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"Alpha", "Bravo", "Charlie"}, taskNames(decodeTasks(t, w)))

		listed := decodeTasks(t, env.do(t, http.MethodGet, "/get_tasks", ""))
		assert.Equal(t, []string{"Alpha", "Bravo", "Charlie"}, taskNames(listed))
	})

	t.Run("by deadline", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/sort_tasks", `{"sort_by":"deadline"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"Bravo", "Alpha", "Charlie"}, taskNames(decodeTasks(t, w)))
	})

	t.Run("null sort_by sorts by priority", func(t *testing.T) {
		env.do(t, http.MethodPost, "/sort_tasks", `{"sort_by":"name"}`)

		w := env.do(t, http.MethodPost, "/sort_tasks", `{"sort_by":null}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"Charlie", "Bravo", "Alpha"}, taskNames(decodeTasks(t, w)))
	})

	t.Run("unknown key sorts by name", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/sort_tasks", `{"sort_by":"effort"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"Alpha", "Bravo", "Charlie"}, taskNames(decodeTasks(t, w)))
	})

	t.Run("malformed json", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/sort_tasks", `{"sort_by":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, MsgInvalidRequest, decodeError(t, w)["message"])
	})
}

func TestTaskHandler_UpdateTask(t *testing.T) {
	const lowTask = `{"name":"Report","deadline":"2025-03-20","project_related":false,"estimated_effort":1}`

	t.Run("not found", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(t, http.MethodPost, "/update_task", `{"name":"Ghost","estimated_effort":"zzz"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, MsgTaskNotFound, decodeError(t, w)["message"])
	})

	t.Run("supplied priority is recomputed", func(t *testing.T) {
		env := newTestEnv(t)
		env.mustAdd(t, lowTask)

		w := env.do(t, http.MethodPost, "/update_task", `{"name":"Report","priority":1}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, MsgTaskUpdated, decodeError(t, w)["message"])

		w = env.do(t, http.MethodGet, "/tasks/Report", "")
		require.Equal(t, http.StatusOK, w.Code)
		var task TaskResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
		assert.Equal(t, domain.PriorityLow, task.Priority)
		assert.Equal(t, domain.NoteLowPriority, task.AINote)
	})

	t.Run("non integer priority is accepted and recomputed", func(t *testing.T) {
		env := newTestEnv(t)
		env.mustAdd(t, lowTask)

		for _, body := range []string{
			`{"name":"Report","priority":"high"}`,
			`{"name":"Report","priority":1.5}`,
			`{"name":"Report","priority":{"level":1}}`,
			`{"name":"Report","priority":null}`,
		} {
			w := env.do(t, http.MethodPost, "/update_task", body)
			require.Equal(t, http.StatusOK, w.Code, body)
			assert.Equal(t, MsgTaskUpdated, decodeError(t, w)["message"])
		}

		listed := decodeTasks(t, env.do(t, http.MethodGet, "/get_tasks", ""))
		require.Len(t, listed, 1)
		assert.Equal(t, domain.PriorityLow, listed[0].Priority)
	})

	t.Run("deadline change rescores", func(t *testing.T) {
		env := newTestEnv(t)
		env.mustAdd(t, lowTask)

		w := env.do(t, http.MethodPost, "/update_task", `{"name":"Report","deadline":"2025-03-11"}`)
		require.Equal(t, http.StatusOK, w.Code)

		listed := decodeTasks(t, env.do(t, http.MethodGet, "/get_tasks", ""))
		require.Len(t, listed, 1)
		assert.Equal(t, "2025-03-11", listed[0].Deadline)
		assert.Equal(t, domain.PriorityHigh, listed[0].Priority)
	})

	t.Run("zero effort is applied", func(t *testing.T) {
		env := newTestEnv(t)
		env.mustAdd(t, `{"name":"Report","deadline":"2025-03-20","project_related":false,"estimated_effort":8}`)

		w := env.do(t, http.MethodPost, "/update_task", `{"name":"Report","estimated_effort":0}`)
		require.Equal(t, http.StatusOK, w.Code)

		listed := decodeTasks(t, env.do(t, http.MethodGet, "/get_tasks", ""))
		assert.Equal(t, 0, listed[0].EstimatedEffort)
		assert.Equal(t, domain.PriorityLow, listed[0].Priority)
	})

	t.Run("invalid effort leaves task unchanged", func(t *testing.T) {
		env := newTestEnv(t)
		env.mustAdd(t, lowTask)
		before := decodeTasks(t, env.do(t, http.MethodGet, "/get_tasks", ""))

		w := env.do(t, http.MethodPost, "/update_task",
			`{"name":"Report","deadline":"2025-03-11","estimated_effort":"lots"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, MsgInvalidEffort, decodeError(t, w)["message"])

		after := decodeTasks(t, env.do(t, http.MethodGet, "/get_tasks", ""))
		assert.Equal(t, before, after)
	})

	t.Run("invalid deadline", func(t *testing.T) {
		env := newTestEnv(t)
		env.mustAdd(t, lowTask)

		w := env.do(t, http.MethodPost, "/update_task", `{"name":"Report","deadline":"2025-02-30"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, MsgInvalidDeadline, decodeError(t, w)["message"])
	})

	t.Run("missing name", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(t, http.MethodPost, "/update_task", `{"priority":2}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid name: required field", decodeError(t, w)["message"])
	})
}

func TestTaskHandler_RemoveTask(t *testing.T) {
	env := newTestEnv(t)
	env.mustAdd(t, `{"name":"Dup","deadline":"2025-03-20","project_related":false,"estimated_effort":1}`)
	env.mustAdd(t, `{"name":"Keep","deadline":"2025-03-20","project_related":false,"estimated_effort":1}`)
	env.mustAdd(t, `{"name":"Dup","deadline":"2025-03-21","project_related":true,"estimated_effort":1}`)

	w := env.do(t, http.MethodPost, "/remove_task", `{"name":"Dup"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Task removed successfully!","removed":2}`, w.Body.String())

	listed := decodeTasks(t, env.do(t, http.MethodGet, "/get_tasks", ""))
	assert.Equal(t, []string{"Keep"}, taskNames(listed))

	w = env.do(t, http.MethodPost, "/remove_task", `{"name":"Dup"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Task removed successfully!","removed":0}`, w.Body.String())

	w = env.do(t, http.MethodPost, "/remove_task", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTaskHandler_GetTask(t *testing.T) {
	env := newTestEnv(t)
	env.mustAdd(t, `{"name":"Write report","deadline":"2025-03-20","project_related":false,"estimated_effort":1}`)
	env.mustAdd(t, `{"name":"Write report","deadline":"2025-03-25","project_related":true,"estimated_effort":1}`)

	w := env.do(t, http.MethodGet, "/tasks/Write%20report", "")
	require.Equal(t, http.StatusOK, w.Code)
	var task TaskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	assert.Equal(t, "2025-03-20", task.Deadline, "first match in storage order")

	w = env.do(t, http.MethodGet, "/tasks/Missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, MsgTaskNotFound, decodeError(t, w)["message"])
}

func TestTaskHandler_InternalErrorIsSanitized(t *testing.T) {
	logBuf, log := logger.SetupTestLogger(t)

	svc := &mocks.MockTaskService{DefaultError: errors.New("open /var/lib/tasks/state.json: disk on fire")}
	r := chi.NewRouter()
	NewTaskHandler(svc, log).RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/get_tasks", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to list tasks", decodeError(t, w)["message"])
	assert.NotContains(t, w.Body.String(), "disk on fire")

	entry, found := logBuf.FindLogEntry("API error response")
	require.True(t, found)
	assert.Equal(t, "ERROR", entry["level"])
}

func TestNewTaskHandlerPanicsOnNilDependencies(t *testing.T) {
	svc, err := service.NewTaskService(memory.NewTaskStore(), fixedClock, nil)
	require.NoError(t, err)

	assert.Panics(t, func() { NewTaskHandler(nil, logger.FromContext(context.Background())) })
	assert.Panics(t, func() { NewTaskHandler(svc, nil) })
}

func TestTaskHandler_SortDefaultsToPriority(t *testing.T) {
	_, log := logger.SetupTestLogger(t)

	var gotKeys []store.SortKey
	svc := &mocks.MockTaskService{
		SortTasksFn: func(_ context.Context, key store.SortKey) ([]*domain.Task, error) {
			gotKeys = append(gotKeys, key)
			return nil, nil
		},
	}
	r := chi.NewRouter()
	NewTaskHandler(svc, log).RegisterRoutes(r)

	for _, body := range []string{"", "{}", `{"sort_by":null}`, `{"sort_by":"deadline"}`, `{"sort_by":""}`} {
		req := httptest.NewRequest(http.MethodPost, "/sort_tasks", strings.NewReader(body))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code, body)
		assert.JSONEq(t, `{"tasks":[]}`, w.Body.String())
	}

	assert.Equal(t, []store.SortKey{
		store.SortByPriority,
		store.SortByPriority,
		store.SortByPriority,
		store.SortByDeadline,
		store.SortKey(""),
	}, gotKeys)
}
