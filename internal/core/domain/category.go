package domain

import (
	"errors"
	"time"
)

var ErrCategoryNotFound = errors.New("category not found")
var ErrDuplicateCategory = errors.New("category name already exists")

// Category groups related products under a unique name.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
