package domain

import (
	"context"
	"time"
)

// Task is a single entry in a user's flat task list.
type Task struct {
	ID         string
	OwnerEmail string
	Text       string
	CreatedAt  time.Time
}

// TaskRepository defines persistence operations for tasks.
// UpdateText and Delete must be single atomic store operations scoped to
// both the task ID and the owner email, returning ErrNotFound when nothing
// matches.
type TaskRepository interface {
	ListByOwner(ctx context.Context, ownerEmail string) ([]Task, error)
	Create(ctx context.Context, task *Task) error
	UpdateText(ctx context.Context, id, ownerEmail, text string) (*Task, error)
	Delete(ctx context.Context, id, ownerEmail string) error
}
