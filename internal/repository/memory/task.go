package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dtroode/tasktracker-server/internal/model"
)

var _ model.TaskStore = (*TaskRepository)(nil)

// TaskRepository keeps tasks in insertion order.
type TaskRepository struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]model.Task
	order []uuid.UUID
}

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{
		tasks: make(map[uuid.UUID]model.Task),
	}
}

func cloneTask(t model.Task) model.Task {
	if t.DueDate != nil {
		d := *t.DueDate
		t.DueDate = &d
	}
	return t
}

func (r *TaskRepository) Create(_ context.Context, task model.Task) (model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tasks[task.ID]; !exists {
		r.order = append(r.order, task.ID)
	}
	r.tasks[task.ID] = cloneTask(task)
	return cloneTask(task), nil
}

func (r *TaskRepository) GetByID(_ context.Context, id uuid.UUID) (model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok {
		return model.Task{}, model.ErrNotFound
	}
	return cloneTask(task), nil
}

func (r *TaskRepository) GetByOwner(_ context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var tasks []model.Task
	for _, id := range r.order {
		if task := r.tasks[id]; task.OwnerID == ownerID {
			tasks = append(tasks, cloneTask(task))
		}
	}
	return tasks, nil
}

// Update replaces the mutable fields of a stored task. OwnerID and CreatedAt are kept.
func (r *TaskRepository) Update(_ context.Context, task model.Task) (model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.tasks[task.ID]
	if !ok {
		return model.Task{}, model.ErrNotFound
	}

	task.OwnerID = current.OwnerID
	task.CreatedAt = current.CreatedAt
	r.tasks[task.ID] = cloneTask(task)
	return cloneTask(task), nil
}

func (r *TaskRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return model.ErrNotFound
	}
	delete(r.tasks, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
