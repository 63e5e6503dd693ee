package ports

import (
	"context"

	"github.com/stockwise/inventory-system/internal/core/domain"
)

// ProductRepository persists products.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindAll(ctx context.Context) ([]*domain.Product, error)
	FindByCategory(ctx context.Context, categoryID string) ([]*domain.Product, error)
	// Search matches keyword as a case-insensitive substring of name or
	// description. An empty keyword matches every product.
	Search(ctx context.Context, keyword string) ([]*domain.Product, error)
	// FindLowStock returns products whose quantity is at or below their
	// reorder level.
	FindLowStock(ctx context.Context) ([]*domain.Product, error)
	ExistsBySKU(ctx context.Context, sku string) (bool, error)
	CountByCategory(ctx context.Context, categoryID string) (int64, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
}
