package ports

import (
	"context"
	"time"
)

// CategoryInput carries the writable fields of a category.
type CategoryInput struct {
	Name        string
	Description string
}

// CategoryResult is the category view returned to callers, including the
// number of products currently assigned to it.
type CategoryResult struct {
	ID           string
	Name         string
	Description  string
	ProductCount int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CategoryService defines use-case operations for categories.
type CategoryService interface {
	Create(ctx context.Context, input CategoryInput) (*CategoryResult, error)
	GetByID(ctx context.Context, id string) (*CategoryResult, error)
	GetAll(ctx context.Context) ([]CategoryResult, error)
	Update(ctx context.Context, id string, input CategoryInput) (*CategoryResult, error)
	Delete(ctx context.Context, id string) error
}
