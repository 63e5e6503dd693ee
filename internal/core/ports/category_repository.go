package ports

import (
	"context"

	"github.com/stockwise/inventory-system/internal/core/domain"
)

// CategoryRepository persists categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	FindAll(ctx context.Context) ([]*domain.Category, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id string) error
}
