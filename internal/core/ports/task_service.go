package ports

import (
	"context"
	"time"

	"github.com/taskboard/task-tracker/internal/core/domain"
)

// CreateTaskInput carries the caller-supplied fields for a new task.
type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     time.Time
	Status      domain.TaskStatus
}

// TaskService defines the task use cases. Every operation that addresses a
// task by id enforces the ownership rule: a missing task is reported as
// domain.ErrTaskNotFound before ownership is ever considered, and a task
// owned by someone else as domain.ErrForbidden.
type TaskService interface {
	Create(ctx context.Context, ownerID string, input CreateTaskInput) (*domain.Task, error)
	List(ctx context.Context, ownerID string, filter TaskFilter) ([]domain.Task, error)
	Get(ctx context.Context, ownerID, taskID string) (*domain.Task, error)
	Update(ctx context.Context, ownerID, taskID string, fields UpdateTaskFields) (*domain.Task, error)
	Delete(ctx context.Context, ownerID, taskID string) error
}
