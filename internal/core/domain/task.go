package domain

import (
	"errors"
	"time"
)

// TaskStatus represents the lifecycle state of a task on the board.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
)

var ErrTaskNotFound = errors.New("task not found")
var ErrForbidden = errors.New("access forbidden")

// Valid reports whether s is one of the recognized task statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Task is a single to-do item. OwnerID is set at creation and never changes;
// only the owner may read, update, or delete the task.
type Task struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"owner_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     time.Time  `json:"due_date,omitempty"`
	Status      TaskStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
