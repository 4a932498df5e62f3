package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/tasktracker-server/internal/model"
)

var _ model.TaskStore = (*TaskRepository)(nil)

type TaskRepository struct {
	db *Connection
}

func NewTaskRepository(db *Connection) *TaskRepository {
	return &TaskRepository{
		db: db,
	}
}

const taskColumns = `id, owner_id, title, description, priority, due_date, completed, created_at, updated_at`

// taskRow mirrors the tasks table; due_date is a nullable DATE.
type taskRow struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Title       string
	Description string
	Priority    string
	DueDate     *time.Time
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (row taskRow) toModel() model.Task {
	task := model.Task{
		ID:          row.ID,
		OwnerID:     row.OwnerID,
		Title:       row.Title,
		Description: row.Description,
		Priority:    model.Priority(row.Priority),
		Completed:   row.Completed,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	if row.DueDate != nil {
		d := model.DateOf(row.DueDate.UTC())
		task.DueDate = &d
	}
	return task
}

func scanTask(row pgx.Row) (model.Task, error) {
	var r taskRow
	err := row.Scan(
		&r.ID, &r.OwnerID, &r.Title, &r.Description, &r.Priority, &r.DueDate,
		&r.Completed, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return model.Task{}, err
	}
	return r.toModel(), nil
}

func dueDateArg(d *model.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.In(time.UTC)
	return &t
}

func (r *TaskRepository) Create(ctx context.Context, task model.Task) (model.Task, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query := `INSERT INTO tasks (id, owner_id, title, description, priority, due_date, completed, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING ` + taskColumns

	saved, err := scanTask(r.db.QueryRow(ctx, query,
		task.ID, task.OwnerID, task.Title, task.Description, string(task.Priority),
		dueDateArg(task.DueDate), task.Completed, task.CreatedAt, task.UpdatedAt,
	))
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to create task: %w", storeError(err))
	}

	return saved, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Task, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task, err := scanTask(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to get task by id: %w", storeError(err))
	}

	return task, nil
}

// GetByOwner returns the owner's tasks in insertion order.
func (r *TaskRepository) GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE owner_id = $1 ORDER BY seq ASC`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tasks by owner: %w", storeError(err))
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", storeError(err))
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", storeError(err))
	}

	return tasks, nil
}

// Update overwrites the mutable fields of a task. owner_id and created_at never change.
func (r *TaskRepository) Update(ctx context.Context, task model.Task) (model.Task, error) {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	query := `UPDATE tasks
			  SET title = $2, description = $3, priority = $4, due_date = $5, completed = $6, updated_at = $7
			  WHERE id = $1
			  RETURNING ` + taskColumns

	saved, err := scanTask(r.db.QueryRow(ctx, query,
		task.ID, task.Title, task.Description, string(task.Priority),
		dueDateArg(task.DueDate), task.Completed, task.UpdatedAt,
	))
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to update task: %w", storeError(err))
	}

	return saved, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	const query = `DELETE FROM tasks WHERE id = $1`
	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", storeError(err))
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
