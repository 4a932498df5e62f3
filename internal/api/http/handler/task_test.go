package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apicontext "github.com/dtroode/tasktracker-server/internal/api/http/context"
	"github.com/dtroode/tasktracker-server/internal/mocks"
	"github.com/dtroode/tasktracker-server/internal/model"
	"github.com/dtroode/tasktracker-server/internal/query"
	"github.com/dtroode/tasktracker-server/internal/testutil"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func taskRouter(h *Task) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/tasks", h.List)
	r.Get("/api/tasks/stats", h.Stats)
	r.Post("/api/tasks", h.Create)
	r.Get("/api/tasks/{id}", h.Get)
	r.Put("/api/tasks/{id}", h.Update)
	r.Patch("/api/tasks/{id}/complete", h.Complete)
	r.Delete("/api/tasks/{id}", h.Delete)
	return r
}

func authedRequest(method, target, body string, userID uuid.UUID) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	return req.WithContext(apicontext.NewManager().SetUserIDToContext(req.Context(), userID))
}

func sampleTask(owner uuid.UUID) model.Task {
	due := model.Date{Year: 2024, Month: time.January, Day: 10}
	now := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	return model.Task{
		ID: uuid.New(), OwnerID: owner, Title: "Write report", Priority: model.PriorityHigh,
		DueDate: &due, CreatedAt: now, UpdatedAt: now,
	}
}

func TestTask_List(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	svc := mocks.NewTaskService(t)
	svc.On("List", mock.Anything, owner, query.FilterPending, query.SortPriority).Return([]model.Task{sampleTask(owner)}, nil).Once()

	h := NewTask(svc, apicontext.NewManager(), testutil.MakeNoopLogger())
	rec := httptest.NewRecorder()
	taskRouter(h).ServeHTTP(rec, authedRequest(http.MethodGet, "/api/tasks?filter=Pending&sort=priority", "", owner))

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)

	var tasks []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, "Write report", tasks[0]["title"])
	assert.Equal(t, "High", tasks[0]["priority"])
	assert.Equal(t, "2024-01-10", tasks[0]["dueDate"])
	assert.Equal(t, false, tasks[0]["completed"])
	assert.Equal(t, owner.String(), tasks[0]["owner"])
}

func TestTask_List_EmptyIsArray(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	svc := mocks.NewTaskService(t)
	svc.On("List", mock.Anything, owner, query.FilterAll, query.SortNewest).Return(nil, nil).Once()

	rec := httptest.NewRecorder()
	taskRouter(NewTask(svc, apicontext.NewManager(), testutil.MakeNoopLogger())).
		ServeHTTP(rec, authedRequest(http.MethodGet, "/api/tasks", "", owner))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, string(decodeEnvelope(t, rec).Data))
}

func TestTask_List_BadFilter(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	taskRouter(NewTask(mocks.NewTaskService(t), apicontext.NewManager(), testutil.MakeNoopLogger())).
		ServeHTTP(rec, authedRequest(http.MethodGet, "/api/tasks?filter=overdue", "", uuid.New()))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", decodeEnvelope(t, rec).Error.Kind)
}

func TestTask_Create(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	svc := mocks.NewTaskService(t)
	svc.On("Create", mock.Anything, mock.MatchedBy(func(p model.CreateTaskParams) bool {
		completed, err := p.Completed.Normalize()
		return p.OwnerID == owner && p.Title == "Write report" && p.Priority == "High" &&
			p.DueDate == "2024-01-10" && err == nil && completed
	})).Return(sampleTask(owner), nil).Once()

	rec := httptest.NewRecorder()
	body := `{"title":"Write report","priority":"High","dueDate":"2024-01-10","completed":"Yes"}`
	taskRouter(NewTask(svc, apicontext.NewManager(), testutil.MakeNoopLogger())).
		ServeHTTP(rec, authedRequest(http.MethodPost, "/api/tasks", body, owner))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, decodeEnvelope(t, rec).Success)
}

func TestTask_Create_InvalidBody(t *testing.T) {
	t.Parallel()

	for name, body := range map[string]string{
		"truncated":     `{"title":`,
		"trailing data": `{"title":"a"}{"x":1}`,
		"trailing junk": `{"title":"a"} x`,
	} {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			taskRouter(NewTask(mocks.NewTaskService(t), apicontext.NewManager(), testutil.MakeNoopLogger())).
				ServeHTTP(rec, authedRequest(http.MethodPost, "/api/tasks", body, uuid.New()))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			env := decodeEnvelope(t, rec)
			require.NotNil(t, env.Error)
			assert.Equal(t, string(model.KindValidation), env.Error.Kind)
		})
	}
}

func TestTask_Update_PartialFields(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	task := sampleTask(owner)
	svc := mocks.NewTaskService(t)
	svc.On("Update", mock.Anything, owner, task.ID, mock.MatchedBy(func(p model.UpdateTaskParams) bool {
		return p.Title != nil && *p.Title == "x" &&
			p.Description == nil && p.Priority == nil &&
			p.DueDate != nil && *p.DueDate == "" &&
			!p.Completed.IsSet()
	})).Return(task, nil).Once()

	rec := httptest.NewRecorder()
	taskRouter(NewTask(svc, apicontext.NewManager(), testutil.MakeNoopLogger())).
		ServeHTTP(rec, authedRequest(http.MethodPut, "/api/tasks/"+task.ID.String(), `{"title":"x","dueDate":null}`, owner))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTask_Complete(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	task := sampleTask(owner)
	task.Completed = true

	svc := mocks.NewTaskService(t)
	svc.On("ToggleComplete", mock.Anything, owner, task.ID, mock.MatchedBy(func(r model.RawCompletion) bool {
		return r.IsSet()
	})).Return(task, nil).Once()
	svc.On("ToggleComplete", mock.Anything, owner, task.ID, mock.MatchedBy(func(r model.RawCompletion) bool {
		return !r.IsSet()
	})).Return(task, nil).Once()

	router := taskRouter(NewTask(svc, apicontext.NewManager(), testutil.MakeNoopLogger()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPatch, "/api/tasks/"+task.ID.String()+"/complete", `{"completed":1}`, owner))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPatch, "/api/tasks/"+task.ID.String()+"/complete", "", owner))
	assert.Equal(t, http.StatusOK, rec.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &got))
	assert.Equal(t, true, got["completed"])
}

func TestTask_ErrorMapping(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	taskID := uuid.New()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
	}{
		{name: "not found", err: model.NewNotFoundError("task", taskID), wantStatus: http.StatusNotFound, wantKind: "not_found"},
		{name: "forbidden", err: model.NewForbiddenError("task", taskID), wantStatus: http.StatusForbidden, wantKind: "forbidden"},
		{name: "unavailable", err: model.NewStoreUnavailable(assert.AnError), wantStatus: http.StatusServiceUnavailable, wantKind: "store_unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := mocks.NewTaskService(t)
			svc.On("Delete", mock.Anything, owner, taskID).Return(tt.err).Once()

			rec := httptest.NewRecorder()
			taskRouter(NewTask(svc, apicontext.NewManager(), testutil.MakeNoopLogger())).
				ServeHTTP(rec, authedRequest(http.MethodDelete, "/api/tasks/"+taskID.String(), "", owner))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantKind, decodeEnvelope(t, rec).Error.Kind)
		})
	}
}

func TestTask_MalformedIDIsNotFound(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	taskRouter(NewTask(mocks.NewTaskService(t), apicontext.NewManager(), testutil.MakeNoopLogger())).
		ServeHTTP(rec, authedRequest(http.MethodGet, "/api/tasks/not-a-uuid", "", uuid.New()))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTask_MissingIdentity(t *testing.T) {
	t.Parallel()

	cm := mocks.NewContextManager(t)
	cm.On("GetUserIDFromContext", mock.Anything).Return(uuid.Nil, false).Once()

	rec := httptest.NewRecorder()
	taskRouter(NewTask(mocks.NewTaskService(t), cm, testutil.MakeNoopLogger())).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tasks/stats", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTask_Stats(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	svc := mocks.NewTaskService(t)
	svc.On("Stats", mock.Anything, owner).Return(model.Stats{Total: 3, Low: 1, Medium: 1, High: 1, Completed: 1, Pending: 2}, nil).Once()

	rec := httptest.NewRecorder()
	taskRouter(NewTask(svc, apicontext.NewManager(), testutil.MakeNoopLogger())).
		ServeHTTP(rec, authedRequest(http.MethodGet, "/api/tasks/stats", "", owner))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"total":3,"lowPriority":1,"mediumPriority":1,"highPriority":1,"completed":1,"pending":2}`,
		string(decodeEnvelope(t, rec).Data))
}
