package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/tasktracker-server/internal/logger"
	"github.com/dtroode/tasktracker-server/internal/model"
	"github.com/dtroode/tasktracker-server/internal/query"
)

// Task runs owner-scoped task mutations and queries.
type Task struct {
	taskStore model.TaskStore
	userStore model.UserStore
	engine    *query.Engine
	logger    *logger.Logger
	now       func() time.Time
}

func NewTask(
	taskStore model.TaskStore,
	userStore model.UserStore,
	engine *query.Engine,
	logger *logger.Logger,
) *Task {
	return &Task{
		taskStore: taskStore,
		userStore: userStore,
		engine:    engine,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *Task) Create(ctx context.Context, params model.CreateTaskParams) (model.Task, error) {
	title, err := normalizeTitle(params.Title)
	if err != nil {
		return model.Task{}, err
	}
	if err := checkDescription(params.Description); err != nil {
		return model.Task{}, err
	}

	priority := model.PriorityLow
	if strings.TrimSpace(params.Priority) != "" {
		priority, err = model.ParsePriority(params.Priority)
		if err != nil {
			return model.Task{}, err
		}
	}

	dueDate, err := parseDueDate(params.DueDate)
	if err != nil {
		return model.Task{}, err
	}

	completed, err := params.Completed.Normalize()
	if err != nil {
		return model.Task{}, err
	}

	_, err = s.userStore.GetByID(ctx, params.OwnerID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Task{}, model.NewUnauthorizedError("user no longer exists", nil)
	}
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to get task owner: %w", err)
	}

	now := s.now().UTC()
	task := model.Task{
		ID:          uuid.New(),
		OwnerID:     params.OwnerID,
		Title:       title,
		Description: params.Description,
		Priority:    priority,
		DueDate:     dueDate,
		Completed:   completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	task, err = s.taskStore.Create(ctx, task)
	if err != nil {
		s.logger.Error("Task service: failed to create task",
			"owner_id", params.OwnerID, "error", err)
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Info("Task service: task created",
		"task_id", task.ID, "owner_id", task.OwnerID)

	return task, nil
}

// Get returns one of the owner's tasks.
func (s *Task) Get(ctx context.Context, ownerID, taskID uuid.UUID) (model.Task, error) {
	return s.getOwned(ctx, ownerID, taskID)
}

// Update applies a partial update. Only fields present in patch are validated and changed.
func (s *Task) Update(ctx context.Context, ownerID, taskID uuid.UUID, patch model.UpdateTaskParams) (model.Task, error) {
	task, err := s.getOwned(ctx, ownerID, taskID)
	if err != nil {
		return model.Task{}, err
	}

	if patch.Title != nil {
		task.Title, err = normalizeTitle(*patch.Title)
		if err != nil {
			return model.Task{}, err
		}
	}

	if patch.Description != nil {
		if err := checkDescription(*patch.Description); err != nil {
			return model.Task{}, err
		}
		task.Description = *patch.Description
	}

	if patch.Priority != nil {
		task.Priority, err = model.ParsePriority(*patch.Priority)
		if err != nil {
			return model.Task{}, err
		}
	}

	if patch.DueDate != nil {
		task.DueDate, err = parseDueDate(*patch.DueDate)
		if err != nil {
			return model.Task{}, err
		}
	}

	if patch.Completed.IsSet() {
		task.Completed, err = patch.Completed.Normalize()
		if err != nil {
			return model.Task{}, err
		}
	}

	return s.save(ctx, task)
}

// ToggleComplete sets the completion state. An absent value flips the current state.
func (s *Task) ToggleComplete(ctx context.Context, ownerID, taskID uuid.UUID, desired model.RawCompletion) (model.Task, error) {
	task, err := s.getOwned(ctx, ownerID, taskID)
	if err != nil {
		return model.Task{}, err
	}

	if desired.IsSet() {
		task.Completed, err = desired.Normalize()
		if err != nil {
			return model.Task{}, err
		}
	} else {
		task.Completed = !task.Completed
	}

	return s.save(ctx, task)
}

// Delete removes a task. Deleting an already deleted task fails with not found.
func (s *Task) Delete(ctx context.Context, ownerID, taskID uuid.UUID) error {
	if _, err := s.getOwned(ctx, ownerID, taskID); err != nil {
		return err
	}

	err := s.taskStore.Delete(ctx, taskID)
	if errors.Is(err, model.ErrNotFound) {
		return model.NewNotFoundError("task", taskID)
	}
	if err != nil {
		s.logger.Error("Task service: failed to delete task",
			"task_id", taskID, "owner_id", ownerID, "error", err)
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.logger.Info("Task service: task deleted",
		"task_id", taskID, "owner_id", ownerID)

	return nil
}

// List returns the owner's tasks matching filter in sort order.
func (s *Task) List(ctx context.Context, ownerID uuid.UUID, filter query.Filter, sort query.SortKey) ([]model.Task, error) {
	tasks, err := s.taskStore.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tasks by owner: %w", err)
	}

	return s.engine.Query(tasks, filter, sort), nil
}

func (s *Task) Stats(ctx context.Context, ownerID uuid.UUID) (model.Stats, error) {
	tasks, err := s.taskStore.GetByOwner(ctx, ownerID)
	if err != nil {
		return model.Stats{}, fmt.Errorf("failed to get tasks by owner: %w", err)
	}

	return s.engine.Stats(tasks), nil
}

func (s *Task) getOwned(ctx context.Context, ownerID, taskID uuid.UUID) (model.Task, error) {
	task, err := s.taskStore.GetByID(ctx, taskID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Task{}, model.NewNotFoundError("task", taskID)
	}
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to get task by id: %w", err)
	}

	if task.OwnerID != ownerID {
		s.logger.Warn("Task service: access to foreign task denied",
			"task_id", taskID, "owner_id", task.OwnerID, "requester_id", ownerID)
		return model.Task{}, model.NewForbiddenError("task", taskID)
	}

	return task, nil
}

func (s *Task) save(ctx context.Context, task model.Task) (model.Task, error) {
	task.UpdatedAt = s.now().UTC()
	if task.UpdatedAt.Before(task.CreatedAt) {
		task.UpdatedAt = task.CreatedAt
	}

	saved, err := s.taskStore.Update(ctx, task)
	if errors.Is(err, model.ErrNotFound) {
		return model.Task{}, model.NewNotFoundError("task", task.ID)
	}
	if err != nil {
		s.logger.Error("Task service: failed to update task",
			"task_id", task.ID, "error", err)
		return model.Task{}, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.Debug("Task service: task updated",
		"task_id", saved.ID, "completed", saved.Completed)

	return saved, nil
}

func normalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", model.NewValidationError("title is required")
	}
	if strings.ContainsRune(title, 0) {
		return "", model.NewValidationError("title must not contain NUL characters")
	}
	return title, nil
}

func checkDescription(description string) error {
	if strings.ContainsRune(description, 0) {
		return model.NewValidationError("description must not contain NUL characters")
	}
	return nil
}

// parseDueDate treats an empty string as no due date.
func parseDueDate(s string) (*model.Date, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := model.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
