// Package postgres implements the task store on PostgreSQL through the pgx
// database/sql driver, with schema managed by goose.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/msomdec/taskboard/internal/domain"
	"github.com/msomdec/taskboard/internal/repository/postgres/migrations"
	"github.com/pressly/goose/v3"
)

// DB wraps a PostgreSQL connection pool and implements domain.Database.
type DB struct {
	SqlDB *sql.DB
	users *UserRepository
	tasks *TaskRepository
}

// New opens a connection pool for the given DSN and verifies it is reachable.
func New(ctx context.Context, dsn string) (*DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return NewFromConn(db), nil
}

// NewFromConn wraps an already opened *sql.DB.
func NewFromConn(db *sql.DB) *DB {
	return &DB{
		SqlDB: db,
		users: &UserRepository{db: db},
		tasks: &TaskRepository{db: db},
	}
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Migrate applies the embedded goose migrations.
func (d *DB) Migrate(ctx context.Context) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, d.SqlDB, "."); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func (d *DB) Ping(ctx context.Context) error {
	return d.SqlDB.PingContext(ctx)
}

func (d *DB) Close() error {
	return d.SqlDB.Close()
}

func (d *DB) Users() domain.UserRepository {
	return d.users
}

func (d *DB) Tasks() domain.TaskRepository {
	return d.tasks
}
