package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/msomdec/taskboard/internal/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type taskDocument struct {
	ID        string    `bson:"_id"`
	Email     string    `bson:"email"`
	Text      string    `bson:"task"`
	CreatedAt time.Time `bson:"created_at"`
}

func (d taskDocument) toDomain() domain.Task {
	return domain.Task{ID: d.ID, OwnerEmail: d.Email, Text: d.Text, CreatedAt: d.CreatedAt}
}

// TaskRepository implements domain.TaskRepository using MongoDB.
type TaskRepository struct {
	coll *mongo.Collection
}

func ownedBy(id, ownerEmail string) bson.D {
	return bson.D{{Key: "_id", Value: id}, {Key: "email", Value: ownerEmail}}
}

func (r *TaskRepository) ListByOwner(ctx context.Context, ownerEmail string) ([]domain.Task, error) {
	cur, err := r.coll.Find(ctx,
		bson.D{{Key: "email", Value: ownerEmail}},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("find tasks: %w", err)
	}

	var docs []taskDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}

	tasks := make([]domain.Task, 0, len(docs))
	for _, d := range docs {
		tasks = append(tasks, d.toDomain())
	}
	return tasks, nil
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	_, err := r.coll.InsertOne(ctx, taskDocument{
		ID:        task.ID,
		Email:     task.OwnerEmail,
		Text:      task.Text,
		CreatedAt: now,
	})
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}

	task.CreatedAt = now
	return nil
}

func (r *TaskRepository) UpdateText(ctx context.Context, id, ownerEmail, text string) (*domain.Task, error) {
	var doc taskDocument
	err := r.coll.FindOneAndUpdate(ctx,
		ownedBy(id, ownerEmail),
		bson.D{{Key: "$set", Value: bson.D{{Key: "task", Value: text}}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update task: %w", err)
	}

	t := doc.toDomain()
	return &t, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id, ownerEmail string) error {
	err := r.coll.FindOneAndDelete(ctx, ownedBy(id, ownerEmail)).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
