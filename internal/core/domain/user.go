package domain

import (
	"errors"
	"time"
)

const (
	RoleUser    = "USER"
	RoleManager = "MANAGER"
	RoleAdmin   = "ADMIN"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUsernameTaken = errors.New("username already taken")
var ErrEmailTaken = errors.New("email already in use")
var ErrRoleNotFound = errors.New("role not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrAccountDisabled = errors.New("account disabled")
var ErrTooManyAttempts = errors.New("too many failed login attempts")

// Role is a named permission group granting route access.
type Role struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// DefaultRoles is the role set seeded at startup when the store is empty.
func DefaultRoles() []Role {
	return []Role{
		{Name: RoleUser, Description: "Standard user with read access to view products and categories"},
		{Name: RoleManager, Description: "Manager with read/write access to manage inventory"},
		{Name: RoleAdmin, Description: "Administrator with full access to all system features"},
	}
}

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	Enabled      bool      `json:"enabled"`
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasRole reports whether the user carries the given role name.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r == name {
			return true
		}
	}
	return false
}
