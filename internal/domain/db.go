package domain

import "context"

// Database defines lifecycle operations for the underlying store and hands
// out its repositories. Each implementation (SQLite, Postgres, MongoDB) owns
// its own schema setup, so the whole backend is swappable.
type Database interface {
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
	Users() UserRepository
	Tasks() TaskRepository
}
