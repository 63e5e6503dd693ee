package handler

import (
	"time"

	"github.com/stockwise/inventory-system/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type categoryRequest struct {
	Name        string `json:"name"        validate:"required,min=2,max=200"`
	Description string `json:"description" validate:"max=1000"`
}

type categoryResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	ProductCount int64     `json:"product_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toCategoryResponse(r *ports.CategoryResult) categoryResponse {
	return categoryResponse{
		ID:           r.ID,
		Name:         r.Name,
		Description:  r.Description,
		ProductCount: r.ProductCount,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func toCategoryResponses(results []ports.CategoryResult) []categoryResponse {
	out := make([]categoryResponse, 0, len(results))
	for i := range results {
		out = append(out, toCategoryResponse(&results[i]))
	}
	return out
}
