package ports

import (
	"context"

	"github.com/taskboard/task-tracker/internal/core/domain"
)

// UserService covers the profile endpoints: read, edit (name/email only),
// and account deletion with cascading task removal.
type UserService interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, fields UpdateUserFields) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
