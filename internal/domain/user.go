package domain

import (
	"context"
	"time"
)

// User represents a registered account. Email is the unique key.
type User struct {
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// UserRepository defines persistence operations for users.
// Accounts are never updated or deleted.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// Identity is the authenticated caller, derived from a verified token.
type Identity struct {
	Email string
}
