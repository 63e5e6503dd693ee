package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/stockwise/inventory-system/internal/api/metrics"
	"github.com/stockwise/inventory-system/internal/core/domain"
	"github.com/stockwise/inventory-system/internal/core/ports"
)

type ProductService struct {
	products   ports.ProductRepository
	categories ports.CategoryRepository
	dispatcher ports.NotificationDispatcher
	logger     zerolog.Logger
}

func NewProductService(
	products ports.ProductRepository,
	categories ports.CategoryRepository,
	dispatcher ports.NotificationDispatcher,
	logger zerolog.Logger,
) *ProductService {
	return &ProductService{
		products:   products,
		categories: categories,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Create persists a new product. The SKU must be unused and the category must
// exist. An empty status defaults to ACTIVE; it is not derived from the
// quantity here — only UpdateStock does that.
func (s *ProductService) Create(ctx context.Context, input ports.ProductInput) (*ports.ProductResult, error) {
	exists, err := s.products.ExistsBySKU(ctx, input.SKU)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	if exists {
		return nil, domain.ErrDuplicateSKU
	}

	category, err := s.categories.FindByID(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}

	status := domain.ProductStatus(input.Status)
	if status == "" {
		status = domain.StatusActive
	}

	now := time.Now().UTC()
	product, err := s.products.Create(ctx, &domain.Product{
		SKU:          input.SKU,
		Name:         input.Name,
		Description:  input.Description,
		Price:        input.Price,
		Quantity:     input.Quantity,
		ReorderLevel: input.ReorderLevel,
		Status:       status,
		CategoryID:   category.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("sku", input.SKU).Msg("failed to create product")
		return nil, err
	}

	metrics.ProductsCreatedTotal.WithLabelValues(category.Name).Inc()
	s.logger.Info().Str("product_id", product.ID).Str("sku", product.SKU).Msg("product created")

	s.dispatcher.Enqueue(ports.Notification{
		Kind:      ports.NotificationProductUpdate,
		ProductID: product.ID,
		SKU:       product.SKU,
		Action:    "CREATED",
	})

	return toProductResult(product, category.Name), nil
}

func (s *ProductService) GetByID(ctx context.Context, id string) (*ports.ProductResult, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.denormalize(ctx, product)
}

func (s *ProductService) GetAll(ctx context.Context) ([]ports.ProductResult, error) {
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.denormalizeAll(ctx, products)
}

func (s *ProductService) GetByCategory(ctx context.Context, categoryID string) ([]ports.ProductResult, error) {
	products, err := s.products.FindByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return s.denormalizeAll(ctx, products)
}

func (s *ProductService) Search(ctx context.Context, keyword string) ([]ports.ProductResult, error) {
	products, err := s.products.Search(ctx, keyword)
	if err != nil {
		return nil, err
	}
	return s.denormalizeAll(ctx, products)
}

func (s *ProductService) GetLowStock(ctx context.Context) ([]ports.ProductResult, error) {
	products, err := s.products.FindLowStock(ctx)
	if err != nil {
		return nil, err
	}
	return s.denormalizeAll(ctx, products)
}

// Update reassigns every field of an existing product, applying the same SKU
// uniqueness and category existence checks as Create.
func (s *ProductService) Update(ctx context.Context, id string, input ports.ProductInput) (*ports.ProductResult, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if product.SKU != input.SKU {
		exists, err := s.products.ExistsBySKU(ctx, input.SKU)
		if err != nil {
			return nil, fmt.Errorf("update product: %w", err)
		}
		if exists {
			return nil, domain.ErrDuplicateSKU
		}
	}

	category, err := s.categories.FindByID(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}

	status := domain.ProductStatus(input.Status)
	if status == "" {
		status = domain.StatusActive
	}

	product.SKU = input.SKU
	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.Quantity = input.Quantity
	product.ReorderLevel = input.ReorderLevel
	product.Status = status
	product.CategoryID = category.ID
	product.UpdatedAt = time.Now().UTC()

	if err := s.products.Update(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to update product")
		return nil, err
	}

	s.logger.Info().Str("product_id", id).Msg("product updated")

	s.dispatcher.Enqueue(ports.Notification{
		Kind:      ports.NotificationProductUpdate,
		ProductID: product.ID,
		SKU:       product.SKU,
		Action:    "UPDATED",
	})

	return toProductResult(product, category.Name), nil
}

// UpdateStock sets the quantity and derives the status from it. A resulting
// LOW_STOCK state enqueues exactly one low-stock alert.
func (s *ProductService) UpdateStock(ctx context.Context, id string, quantity int) (*ports.ProductResult, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Quantity = quantity
	product.Status = domain.StatusForQuantity(quantity, product.ReorderLevel)
	product.UpdatedAt = time.Now().UTC()

	if err := s.products.Update(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to update stock")
		return nil, err
	}

	metrics.StockUpdatesTotal.WithLabelValues(string(product.Status)).Inc()
	s.logger.Info().
		Str("product_id", id).
		Int("quantity", quantity).
		Str("status", string(product.Status)).
		Msg("stock updated")

	if product.Status == domain.StatusLowStock {
		s.dispatcher.Enqueue(ports.Notification{
			Kind:         ports.NotificationLowStock,
			ProductID:    product.ID,
			SKU:          product.SKU,
			ProductName:  product.Name,
			Quantity:     product.Quantity,
			ReorderLevel: product.ReorderLevel,
		})
	}

	return s.denormalize(ctx, product)
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		return err
	}
	s.logger.Info().Str("product_id", id).Str("sku", product.SKU).Msg("product deleted")

	s.dispatcher.Enqueue(ports.Notification{
		Kind:      ports.NotificationProductUpdate,
		ProductID: product.ID,
		SKU:       product.SKU,
		Action:    "DELETED",
	})
	return nil
}

// denormalize resolves the category name for a single product. A missing
// category (deleted after the product was created) is rendered as an empty
// name rather than an error.
func (s *ProductService) denormalize(ctx context.Context, product *domain.Product) (*ports.ProductResult, error) {
	name, err := s.categoryName(ctx, product.CategoryID)
	if err != nil {
		return nil, err
	}
	return toProductResult(product, name), nil
}

func (s *ProductService) denormalizeAll(ctx context.Context, products []*domain.Product) ([]ports.ProductResult, error) {
	names := make(map[string]string, 4)
	results := make([]ports.ProductResult, 0, len(products))
	for _, product := range products {
		name, ok := names[product.CategoryID]
		if !ok {
			var err error
			name, err = s.categoryName(ctx, product.CategoryID)
			if err != nil {
				return nil, err
			}
			names[product.CategoryID] = name
		}
		results = append(results, *toProductResult(product, name))
	}
	return results, nil
}

func (s *ProductService) categoryName(ctx context.Context, categoryID string) (string, error) {
	category, err := s.categories.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return "", nil
		}
		return "", err
	}
	return category.Name, nil
}

func toProductResult(p *domain.Product, categoryName string) *ports.ProductResult {
	return &ports.ProductResult{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		Quantity:     p.Quantity,
		ReorderLevel: p.ReorderLevel,
		CategoryID:   p.CategoryID,
		CategoryName: categoryName,
		Status:       string(p.Status),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
