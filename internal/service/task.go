package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/msomdec/taskboard/internal/domain"
)

// TaskService handles task CRUD scoped to the authenticated owner.
type TaskService struct {
	tasks domain.TaskRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(tasks domain.TaskRepository) *TaskService {
	return &TaskService{tasks: tasks}
}

// List returns every task owned by owner.
func (s *TaskService) List(ctx context.Context, owner string) ([]domain.Task, error) {
	tasks, err := s.tasks.ListByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}

// Create adds a task for owner.
func (s *TaskService) Create(ctx context.Context, owner, text string) (*domain.Task, error) {
	if err := validateText(text); err != nil {
		return nil, err
	}

	task := &domain.Task{OwnerEmail: owner, Text: text}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// Update replaces the text of a task owned by owner. A task that does not
// exist and a task owned by someone else both yield ErrNotFound.
func (s *TaskService) Update(ctx context.Context, owner, id, text string) (*domain.Task, error) {
	if err := validateText(text); err != nil {
		return nil, err
	}

	task, err := s.tasks.UpdateText(ctx, id, owner, text)
	if err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes a task owned by owner, with the same ErrNotFound rule as Update.
func (s *TaskService) Delete(ctx context.Context, owner, id string) error {
	return s.tasks.Delete(ctx, id, owner)
}

func validateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: task content required", domain.ErrInvalidInput)
	}
	return nil
}
