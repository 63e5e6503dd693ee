package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/stockwise/inventory-system/internal/core/domain"
	"github.com/stockwise/inventory-system/internal/core/ports"
)

type UserService struct {
	users  ports.UserRepository
	roles  ports.RoleRepository
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, roles ports.RoleRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, roles: roles, logger: logger}
}

// Create registers a new account. Username and email must be unused, every
// requested role name must exist, and the password is stored only as a bcrypt
// hash. No roles requested means the default USER role.
func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*ports.UserResult, error) {
	taken, err := s.users.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	if taken {
		return nil, domain.ErrUsernameTaken
	}

	taken, err = s.users.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	if taken {
		return nil, domain.ErrEmailTaken
	}

	roleNames := input.Roles
	if len(roleNames) == 0 {
		roleNames = []string{domain.RoleUser}
	}
	resolved := make([]string, 0, len(roleNames))
	for _, name := range roleNames {
		role, err := s.roles.FindByName(ctx, name)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, role.Name)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user, err := s.users.Create(ctx, &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		FullName:     input.FullName,
		Enabled:      true,
		Roles:        resolved,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("username", input.Username).Msg("failed to create user")
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user created")
	return toUserResult(user), nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*ports.UserResult, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserResult(user), nil
}

func (s *UserService) GetAll(ctx context.Context) ([]ports.UserResult, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]ports.UserResult, 0, len(users))
	for _, user := range users {
		results = append(results, *toUserResult(user))
	}
	return results, nil
}

// Update changes email and full name, and re-hashes the password only when a
// non-empty one is supplied. Changing the email to one held by another user
// is a conflict.
func (s *UserService) Update(ctx context.Context, id string, input ports.UpdateUserInput) (*ports.UserResult, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.Email != input.Email {
		taken, err := s.users.ExistsByEmail(ctx, input.Email)
		if err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
		if taken {
			return nil, domain.ErrEmailTaken
		}
	}

	user.Email = input.Email
	user.FullName = input.FullName
	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("user_id", id).Msg("failed to update user")
		return nil, err
	}

	s.logger.Info().Str("user_id", id).Msg("user updated")
	return toUserResult(user), nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("user_id", id).Msg("failed to delete user")
		return err
	}
	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

func toUserResult(u *domain.User) *ports.UserResult {
	return &ports.UserResult{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		Enabled:   u.Enabled,
		Roles:     u.Roles,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
