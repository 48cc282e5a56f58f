package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/msomdec/taskboard/internal/domain"
)

// TaskRepository implements domain.TaskRepository using PostgreSQL.
type TaskRepository struct {
	db *sql.DB
}

func (r *TaskRepository) ListByOwner(ctx context.Context, ownerEmail string) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, owner_email, text, created_at
		 FROM tasks WHERE owner_email = $1 ORDER BY created_at, id`, ownerEmail)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.OwnerEmail, &t.Text, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (id, owner_email, text, created_at) VALUES ($1, $2, $3, $4)`,
		task.ID, task.OwnerEmail, task.Text, now,
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}

	task.CreatedAt = now
	return nil
}

func (r *TaskRepository) UpdateText(ctx context.Context, id, ownerEmail, text string) (*domain.Task, error) {
	t := &domain.Task{}
	err := r.db.QueryRowContext(ctx,
		`UPDATE tasks SET text = $1 WHERE id = $2 AND owner_email = $3
		 RETURNING id, owner_email, text, created_at`,
		text, id, ownerEmail,
	).Scan(&t.ID, &t.OwnerEmail, &t.Text, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update task: %w", err)
	}
	return t, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id, ownerEmail string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE id = $1 AND owner_email = $2`, id, ownerEmail)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
