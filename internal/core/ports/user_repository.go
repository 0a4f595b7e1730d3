package ports

import (
	"context"

	"github.com/taskboard/task-tracker/internal/core/domain"
)

// UserRepository defines the persistence contract for user accounts.
// Emails are stored normalized (lowercase); duplicate inserts or updates
// must surface domain.ErrEmailTaken.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, fields UpdateUserFields) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.User, error)
}

// UpdateUserFields carries the profile fields that may change after signup.
// Nil pointers leave the stored value untouched.
type UpdateUserFields struct {
	Name  *string
	Email *string
}
