package ports

import (
	"context"

	"github.com/stockwise/inventory-system/internal/core/domain"
)

// UserRepository persists user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}

// RoleRepository persists the fixed role catalogue.
type RoleRepository interface {
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	Count(ctx context.Context) (int64, error)
	CreateAll(ctx context.Context, roles []domain.Role) error
}
