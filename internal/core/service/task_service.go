package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskboard/task-tracker/internal/api/metrics"
	"github.com/taskboard/task-tracker/internal/core/domain"
	"github.com/taskboard/task-tracker/internal/core/ports"
)

// TaskService implements the task use cases and is the single place where
// the ownership rule is enforced.
type TaskService struct {
	repo   ports.TaskRepository
	logger zerolog.Logger
}

func NewTaskService(repo ports.TaskRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, logger: logger}
}

// Create stores a new task owned by ownerID. Status defaults to pending.
func (s *TaskService) Create(ctx context.Context, ownerID string, input ports.CreateTaskInput) (*domain.Task, error) {
	status := input.Status
	if status == "" {
		status = domain.StatusPending
	}

	now := time.Now().UTC()
	task := &domain.Task{
		OwnerID:     ownerID,
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to create task")
		return nil, err
	}

	metrics.TaskOperationsTotal.WithLabelValues("create").Inc()
	return created, nil
}

// List returns the caller's tasks only; the owner filter is applied in the
// store query, never left to the handler.
func (s *TaskService) List(ctx context.Context, ownerID string, filter ports.TaskFilter) ([]domain.Task, error) {
	tasks, err := s.repo.FindByOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}
	metrics.TaskOperationsTotal.WithLabelValues("list").Inc()
	return tasks, nil
}

// Get fetches a task by id and adjudicates ownership.
func (s *TaskService) Get(ctx context.Context, ownerID, taskID string) (*domain.Task, error) {
	task, err := s.authorize(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}
	metrics.TaskOperationsTotal.WithLabelValues("get").Inc()
	return task, nil
}

// Update applies a partial update after the ownership check passes.
func (s *TaskService) Update(ctx context.Context, ownerID, taskID string, fields ports.UpdateTaskFields) (*domain.Task, error) {
	if _, err := s.authorize(ctx, ownerID, taskID); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, taskID, fields)
	if err != nil {
		return nil, err
	}
	metrics.TaskOperationsTotal.WithLabelValues("update").Inc()
	return updated, nil
}

// Delete removes a task after the ownership check passes.
func (s *TaskService) Delete(ctx context.Context, ownerID, taskID string) error {
	if _, err := s.authorize(ctx, ownerID, taskID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, taskID); err != nil {
		return err
	}
	metrics.TaskOperationsTotal.WithLabelValues("delete").Inc()
	return nil
}

// authorize locates the task and checks ownership, in that order. A missing
// task is always ErrTaskNotFound, whoever asks; an existing task owned by
// someone else is ErrForbidden. The order must not change: existence wins
// over ownership so a non-owner probing a dead id learns nothing extra.
func (s *TaskService) authorize(ctx context.Context, ownerID, taskID string) (*domain.Task, error) {
	task, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.OwnerID != ownerID {
		s.logger.Warn().
			Str("task_id", taskID).
			Str("owner_id", task.OwnerID).
			Str("caller_id", ownerID).
			Msg("cross-user task access denied")
		return nil, domain.ErrForbidden
	}
	return task, nil
}
