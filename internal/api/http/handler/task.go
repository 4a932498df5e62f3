package handler

import (
	"net/http"
	"time"

	"github.com/dtroode/tasktracker-server/internal/api/http/response"
	"github.com/dtroode/tasktracker-server/internal/logger"
	"github.com/dtroode/tasktracker-server/internal/model"
	"github.com/dtroode/tasktracker-server/internal/query"
)

type Task struct {
	service        TaskService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewTask(service TaskService, contextManager model.ContextManager, logger *logger.Logger) *Task {
	return &Task{service: service, contextManager: contextManager, logger: logger}
}

type taskResponse struct {
	ID          string      `json:"id"`
	Owner       string      `json:"owner"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Priority    string      `json:"priority"`
	DueDate     *model.Date `json:"dueDate"`
	Completed   bool        `json:"completed"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func toTaskResponse(t model.Task) taskResponse {
	return taskResponse{
		ID:          t.ID.String(),
		Owner:       t.OwnerID.String(),
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		DueDate:     t.DueDate,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

type createTaskRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Priority    string              `json:"priority"`
	DueDate     optionalString      `json:"dueDate"`
	Completed   model.RawCompletion `json:"completed"`
}

type updateTaskRequest struct {
	Title       optionalString      `json:"title"`
	Description optionalString      `json:"description"`
	Priority    optionalString      `json:"priority"`
	DueDate     optionalString      `json:"dueDate"`
	Completed   model.RawCompletion `json:"completed"`
}

type completeTaskRequest struct {
	Completed model.RawCompletion `json:"completed"`
}

// List handles GET /api/tasks?filter=&sort=.
func (h *Task) List(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userID(h.contextManager, r)
	if err != nil {
		response.Error(w, err)
		return
	}

	filter, err := query.ParseFilter(r.URL.Query().Get("filter"))
	if err != nil {
		response.Error(w, err)
		return
	}
	sort, err := query.ParseSortKey(r.URL.Query().Get("sort"))
	if err != nil {
		response.Error(w, err)
		return
	}

	tasks, err := h.service.List(r.Context(), ownerID, filter, sort)
	if err != nil {
		h.logger.Error("Task handler: failed to list tasks", "owner_id", ownerID, "error", err)
		response.Error(w, err)
		return
	}

	out := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResponse(t))
	}
	response.JSON(w, http.StatusOK, out)
}

func (h *Task) Stats(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userID(h.contextManager, r)
	if err != nil {
		response.Error(w, err)
		return
	}

	stats, err := h.service.Stats(r.Context(), ownerID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, stats)
}

func (h *Task) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userID(h.contextManager, r)
	if err != nil {
		response.Error(w, err)
		return
	}

	var req createTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, err)
		return
	}

	task, err := h.service.Create(r.Context(), model.CreateTaskParams{
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     req.DueDate.Value,
		Completed:   req.Completed,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, toTaskResponse(task))
}

func (h *Task) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userID(h.contextManager, r)
	if err != nil {
		response.Error(w, err)
		return
	}
	taskID, err := pathID(r, "id", "task")
	if err != nil {
		response.Error(w, err)
		return
	}

	task, err := h.service.Get(r.Context(), ownerID, taskID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, toTaskResponse(task))
}

// Update handles a partial update. Absent fields are left unchanged.
func (h *Task) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userID(h.contextManager, r)
	if err != nil {
		response.Error(w, err)
		return
	}
	taskID, err := pathID(r, "id", "task")
	if err != nil {
		response.Error(w, err)
		return
	}

	var req updateTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, err)
		return
	}

	task, err := h.service.Update(r.Context(), ownerID, taskID, model.UpdateTaskParams{
		Title:       req.Title.Ptr(),
		Description: req.Description.Ptr(),
		Priority:    req.Priority.Ptr(),
		DueDate:     req.DueDate.Ptr(),
		Completed:   req.Completed,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, toTaskResponse(task))
}

// Complete handles PATCH /api/tasks/{id}/complete. An empty body flips the state.
func (h *Task) Complete(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userID(h.contextManager, r)
	if err != nil {
		response.Error(w, err)
		return
	}
	taskID, err := pathID(r, "id", "task")
	if err != nil {
		response.Error(w, err)
		return
	}

	var req completeTaskRequest
	if err := decodeOptionalJSON(w, r, &req); err != nil {
		response.Error(w, err)
		return
	}

	task, err := h.service.ToggleComplete(r.Context(), ownerID, taskID, req.Completed)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, toTaskResponse(task))
}

func (h *Task) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, err := userID(h.contextManager, r)
	if err != nil {
		response.Error(w, err)
		return
	}
	taskID, err := pathID(r, "id", "task")
	if err != nil {
		response.Error(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), ownerID, taskID); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, nil)
}
