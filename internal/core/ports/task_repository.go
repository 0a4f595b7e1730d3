package ports

import (
	"context"
	"time"

	"github.com/taskboard/task-tracker/internal/core/domain"
)

// Sort keys accepted by the task list endpoint.
const (
	SortByCreatedAt = "created_at"
	SortByDueDate   = "due_date"
	SortByTitle     = "title"
	SortByStatus    = "status"
)

// TaskFilter enumerates the recognized list parameters. It is a closed struct
// on purpose: query values the API does not understand are rejected at the
// boundary, never forwarded to the store.
type TaskFilter struct {
	// Status narrows the list to a single status when non-empty.
	Status domain.TaskStatus
	// SortKey is one of the SortBy constants; empty means SortByCreatedAt.
	SortKey string
	// SortDescending inverts the sort order. The default listing is
	// created_at descending (newest first).
	SortDescending bool
}

// UpdateTaskFields carries a partial task update. Nil pointers leave the
// stored value untouched. OwnerID is deliberately absent: ownership is
// immutable after creation.
type UpdateTaskFields struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Status      *domain.TaskStatus
}

// TaskRepository defines the persistence contract for tasks.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	FindByOwner(ctx context.Context, ownerID string, filter TaskFilter) ([]domain.Task, error)
	Update(ctx context.Context, id string, fields UpdateTaskFields) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
	// DeleteByOwner removes every task belonging to ownerID and reports how
	// many were deleted. Used by the account-deletion purge pipeline.
	DeleteByOwner(ctx context.Context, ownerID string) (int64, error)
}
