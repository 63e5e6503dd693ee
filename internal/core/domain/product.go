package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ProductStatus represents the stock-level state of a product.
type ProductStatus string

const (
	StatusActive     ProductStatus = "ACTIVE"
	StatusLowStock   ProductStatus = "LOW_STOCK"
	StatusOutOfStock ProductStatus = "OUT_OF_STOCK"
)

var ErrProductNotFound = errors.New("product not found")
var ErrDuplicateSKU = errors.New("product sku already exists")

// StatusForQuantity derives the stock status from a quantity and reorder level.
// Zero quantity always wins over the reorder comparison.
func StatusForQuantity(quantity, reorderLevel int) ProductStatus {
	switch {
	case quantity == 0:
		return StatusOutOfStock
	case quantity <= reorderLevel:
		return StatusLowStock
	default:
		return StatusActive
	}
}

// Product is a stock-keeping unit tracked by the inventory.
type Product struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	ReorderLevel int             `json:"reorder_level"`
	Status       ProductStatus   `json:"status"`
	CategoryID   string          `json:"category_id"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// IsLowStock reports whether the product sits at or below its reorder level.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.ReorderLevel
}
