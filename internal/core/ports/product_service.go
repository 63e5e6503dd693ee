package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ProductInput carries the writable fields of a product.
type ProductInput struct {
	SKU          string
	Name         string
	Description  string
	Price        decimal.Decimal
	Quantity     int
	ReorderLevel int
	CategoryID   string
	// Status is stored as given on create/update; empty means ACTIVE.
	// Only UpdateStock derives it from the quantity.
	Status string
}

// ProductResult is the denormalized product view returned to callers.
type ProductResult struct {
	ID           string
	SKU          string
	Name         string
	Description  string
	Price        decimal.Decimal
	Quantity     int
	ReorderLevel int
	CategoryID   string
	CategoryName string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProductService defines use-case operations for products.
type ProductService interface {
	Create(ctx context.Context, input ProductInput) (*ProductResult, error)
	GetByID(ctx context.Context, id string) (*ProductResult, error)
	GetAll(ctx context.Context) ([]ProductResult, error)
	GetByCategory(ctx context.Context, categoryID string) ([]ProductResult, error)
	Search(ctx context.Context, keyword string) ([]ProductResult, error)
	GetLowStock(ctx context.Context) ([]ProductResult, error)
	Update(ctx context.Context, id string, input ProductInput) (*ProductResult, error)
	UpdateStock(ctx context.Context, id string, quantity int) (*ProductResult, error)
	Delete(ctx context.Context, id string) error
}
