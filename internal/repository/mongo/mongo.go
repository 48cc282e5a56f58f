// Package mongo implements the task store on MongoDB. Task documents carry
// string UUID _ids and users store a bcrypt hash under password_hash; the
// collections are created and indexed by Migrate and are not compatible with
// data written by other tools.
package mongo

import (
	"context"
	"fmt"

	"github.com/msomdec/taskboard/internal/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	usersCollection = "users"
	tasksCollection = "tasks"
)

// DB wraps a MongoDB client bound to one database and implements
// domain.Database.
type DB struct {
	client *mongo.Client
	db     *mongo.Database
	users  *UserRepository
	tasks  *TaskRepository
}

// New connects to the deployment at uri and selects the named database.
func New(ctx context.Context, uri, database string) (*DB, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping: %w", err)
	}

	db := client.Database(database)
	return &DB{
		client: client,
		db:     db,
		users:  &UserRepository{coll: db.Collection(usersCollection)},
		tasks:  &TaskRepository{coll: db.Collection(tasksCollection)},
	}, nil
}

// Migrate creates the indexes the repositories rely on. Index creation is
// idempotent, so it is safe to run on every start.
func (d *DB) Migrate(ctx context.Context) error {
	_, err := d.db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("users_email_unique"),
	})
	if err != nil {
		return fmt.Errorf("create users email index: %w", err)
	}

	_, err = d.db.Collection(tasksCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}, {Key: "created_at", Value: 1}},
		Options: options.Index().SetName("tasks_email_created_at"),
	})
	if err != nil {
		return fmt.Errorf("create tasks email index: %w", err)
	}
	return nil
}

func (d *DB) Ping(ctx context.Context) error {
	return d.client.Ping(ctx, nil)
}

func (d *DB) Close() error {
	return d.client.Disconnect(context.Background())
}

// Drop removes the whole database. Used by tests.
func (d *DB) Drop(ctx context.Context) error {
	return d.db.Drop(ctx)
}

func (d *DB) Users() domain.UserRepository {
	return d.users
}

func (d *DB) Tasks() domain.TaskRepository {
	return d.tasks
}
