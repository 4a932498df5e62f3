package model

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaskStore defines persistence operations for tasks.
type TaskStore interface {
	Create(ctx context.Context, task Task) (Task, error)
	GetByID(ctx context.Context, id uuid.UUID) (Task, error)
	GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]Task, error)
	Update(ctx context.Context, task Task) (Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Task represents a stored task. Completed is always canonical.
type Task struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Title       string
	Description string
	Priority    Priority
	DueDate     *Date
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Priority enumerates task priorities.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// ParsePriority matches s case-insensitively against the canonical priorities.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return PriorityLow, nil
	case "medium":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	}
	return "", NewValidationError("priority must be one of Low, Medium, High, got %q", s)
}

// Rank orders priorities: High=3, Medium=2, Low=1.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// CreateTaskParams contains parameters to create a task.
type CreateTaskParams struct {
	OwnerID     uuid.UUID
	Title       string
	Description string
	Priority    string
	DueDate     string
	Completed   RawCompletion
}

// UpdateTaskParams is a partial task update. Nil fields and an unset
// completion are left untouched. A non-nil empty DueDate clears it.
type UpdateTaskParams struct {
	Title       *string
	Description *string
	Priority    *string
	DueDate     *string
	Completed   RawCompletion
}

// Stats aggregates an owner's task set.
type Stats struct {
	Total     int `json:"total"`
	Low       int `json:"lowPriority"`
	Medium    int `json:"mediumPriority"`
	High      int `json:"highPriority"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}
