package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/taskboard/task-tracker/internal/core/domain"
	"github.com/taskboard/task-tracker/internal/core/ports"
)

// PurgeQueue accepts the post-deletion cleanup of a user's tasks. The API
// response does not wait for the purge; workers pick it up asynchronously.
type PurgeQueue interface {
	EnqueuePurge(userID string)
}

// UserService implements the profile endpoints.
type UserService struct {
	repo   ports.UserRepository
	purges PurgeQueue
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, purges PurgeQueue, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, purges: purges, logger: logger}
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// Update edits name and/or email. Password changes are not part of the
// profile surface. An email moving onto an address someone else registered
// surfaces as domain.ErrEmailTaken from the repository.
func (s *UserService) Update(ctx context.Context, id string, fields ports.UpdateUserFields) (*domain.User, error) {
	if fields.Email != nil {
		normalized := NormalizeEmail(*fields.Email)
		fields.Email = &normalized
	}
	return s.repo.Update(ctx, id, fields)
}

// Delete removes the account record and enqueues removal of the user's
// tasks. The record delete is synchronous; the task purge is not, and a
// purge failure never surfaces to the caller.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.purges.EnqueuePurge(id)
	s.logger.Info().Str("user_id", id).Msg("account deleted, task purge enqueued")
	return nil
}
