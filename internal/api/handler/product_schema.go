package handler

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stockwise/inventory-system/internal/core/ports"
)

// productRequest covers both create and full update. Price positivity is
// checked in the handler because the validator cannot see inside
// decimal.Decimal.
type productRequest struct {
	SKU          string          `json:"sku"           validate:"required,min=3,max=50"`
	Name         string          `json:"name"          validate:"required,min=2,max=200"`
	Description  string          `json:"description"   validate:"max=1000"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"      validate:"gte=0"`
	ReorderLevel int             `json:"reorder_level" validate:"gte=0"`
	CategoryID   string          `json:"category_id"   validate:"required"`
	Status       string          `json:"status"        validate:"omitempty,oneof=ACTIVE LOW_STOCK OUT_OF_STOCK"`
}

func (r *productRequest) toInput() ports.ProductInput {
	return ports.ProductInput{
		SKU:          r.SKU,
		Name:         r.Name,
		Description:  r.Description,
		Price:        r.Price,
		Quantity:     r.Quantity,
		ReorderLevel: r.ReorderLevel,
		CategoryID:   r.CategoryID,
		Status:       r.Status,
	}
}

type productResponse struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	ReorderLevel int             `json:"reorder_level"`
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func toProductResponse(r *ports.ProductResult) productResponse {
	return productResponse{
		ID:           r.ID,
		SKU:          r.SKU,
		Name:         r.Name,
		Description:  r.Description,
		Price:        r.Price,
		Quantity:     r.Quantity,
		ReorderLevel: r.ReorderLevel,
		CategoryID:   r.CategoryID,
		CategoryName: r.CategoryName,
		Status:       r.Status,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func toProductResponses(results []ports.ProductResult) []productResponse {
	out := make([]productResponse, 0, len(results))
	for i := range results {
		out = append(out, toProductResponse(&results[i]))
	}
	return out
}
