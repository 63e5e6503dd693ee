package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/stockwise/inventory-system/internal/core/domain"
	"github.com/stockwise/inventory-system/internal/core/ports"
)

type CategoryService struct {
	categories ports.CategoryRepository
	products   ports.ProductRepository
	logger     zerolog.Logger
}

func NewCategoryService(categories ports.CategoryRepository, products ports.ProductRepository, logger zerolog.Logger) *CategoryService {
	return &CategoryService{categories: categories, products: products, logger: logger}
}

// Create persists a new category. The name must not already be in use.
func (s *CategoryService) Create(ctx context.Context, input ports.CategoryInput) (*ports.CategoryResult, error) {
	exists, err := s.categories.ExistsByName(ctx, input.Name)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	if exists {
		return nil, domain.ErrDuplicateCategory
	}

	now := time.Now().UTC()
	category, err := s.categories.Create(ctx, &domain.Category{
		Name:        input.Name,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("name", input.Name).Msg("failed to create category")
		return nil, err
	}

	s.logger.Info().Str("category_id", category.ID).Str("name", category.Name).Msg("category created")
	return &ports.CategoryResult{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}, nil
}

func (s *CategoryService) GetByID(ctx context.Context, id string) (*ports.CategoryResult, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toResult(ctx, category)
}

func (s *CategoryService) GetAll(ctx context.Context) ([]ports.CategoryResult, error) {
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]ports.CategoryResult, 0, len(categories))
	for _, category := range categories {
		r, err := s.toResult(ctx, category)
		if err != nil {
			return nil, err
		}
		results = append(results, *r)
	}
	return results, nil
}

// Update renames and redescribes a category. Renaming to a name held by a
// different category is a conflict; keeping the current name is allowed.
func (s *CategoryService) Update(ctx context.Context, id string, input ports.CategoryInput) (*ports.CategoryResult, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if category.Name != input.Name {
		exists, err := s.categories.ExistsByName(ctx, input.Name)
		if err != nil {
			return nil, fmt.Errorf("update category: %w", err)
		}
		if exists {
			return nil, domain.ErrDuplicateCategory
		}
	}

	category.Name = input.Name
	category.Description = input.Description
	category.UpdatedAt = time.Now().UTC()

	if err := s.categories.Update(ctx, category); err != nil {
		s.logger.Error().Err(err).Str("category_id", id).Msg("failed to update category")
		return nil, err
	}

	s.logger.Info().Str("category_id", id).Msg("category updated")
	return s.toResult(ctx, category)
}

// Delete removes a category. Owned products keep their category reference;
// the store has no cascading deletes.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("category_id", id).Msg("failed to delete category")
		return err
	}
	s.logger.Info().Str("category_id", id).Msg("category deleted")
	return nil
}

func (s *CategoryService) toResult(ctx context.Context, category *domain.Category) (*ports.CategoryResult, error) {
	count, err := s.products.CountByCategory(ctx, category.ID)
	if err != nil {
		return nil, fmt.Errorf("count products for category %s: %w", category.ID, err)
	}
	return &ports.CategoryResult{
		ID:           category.ID,
		Name:         category.Name,
		Description:  category.Description,
		ProductCount: count,
		CreatedAt:    category.CreatedAt,
		UpdatedAt:    category.UpdatedAt,
	}, nil
}
