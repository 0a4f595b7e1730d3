package ports

import (
	"context"

	"github.com/taskboard/task-tracker/internal/core/domain"
)

// AuthService implements credential issuance: signup and login both return a
// signed bearer token alongside the account record.
type AuthService interface {
	Signup(ctx context.Context, name, email, password string) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
