package ports

import (
	"context"
	"time"
)

// CreateUserInput carries the fields needed to register a new account.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	FullName string
	// Roles holds role names to assign; empty defaults to USER.
	Roles []string
}

// UpdateUserInput carries the mutable profile fields. Password is re-hashed
// only when non-empty.
type UpdateUserInput struct {
	Email    string
	FullName string
	Password string
}

// UserResult is the user view returned to callers. It never carries the
// password hash.
type UserResult struct {
	ID        string
	Username  string
	Email     string
	FullName  string
	Enabled   bool
	Roles     []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserService defines use-case operations for user accounts.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*UserResult, error)
	GetByID(ctx context.Context, id string) (*UserResult, error)
	GetAll(ctx context.Context) ([]UserResult, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*UserResult, error)
	Delete(ctx context.Context, id string) error
}
