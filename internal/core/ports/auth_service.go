package ports

import "context"

// LoginResult carries the signed token plus the identity it embeds.
type LoginResult struct {
	Token    string
	Username string
	Roles    []string
}

// AuthService verifies credentials and issues tokens. Registration delegates
// to UserService.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Register(ctx context.Context, input CreateUserInput) (*UserResult, error)
}
