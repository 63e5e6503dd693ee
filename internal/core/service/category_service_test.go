package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stockwise/inventory-system/internal/core/domain"
	"github.com/stockwise/inventory-system/internal/core/ports"
)

func newCategoryFixture() (*CategoryService, *stubCategoryRepo, *stubProductRepo) {
	categories := newStubCategoryRepo()
	products := newStubProductRepo()
	return NewCategoryService(categories, products, discardLogger), categories, products
}

func TestCategoryService_Create_Success(t *testing.T) {
	svc, categories, _ := newCategoryFixture()

	result, err := svc.Create(context.Background(), ports.CategoryInput{
		Name:        "Electronics",
		Description: "Gadgets and devices",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ID == "" {
		t.Error("expected an assigned id")
	}
	if len(categories.byID) != 1 {
		t.Errorf("expected 1 stored category, got %d", len(categories.byID))
	}
}

func TestCategoryService_Create_DuplicateName(t *testing.T) {
	svc, categories, _ := newCategoryFixture()

	if _, err := svc.Create(context.Background(), ports.CategoryInput{Name: "Electronics"}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := svc.Create(context.Background(), ports.CategoryInput{Name: "Electronics"})
	if !errors.Is(err, domain.ErrDuplicateCategory) {
		t.Fatalf("expected ErrDuplicateCategory, got %v", err)
	}
	if len(categories.byID) != 1 {
		t.Errorf("expected 1 stored category after rejected duplicate, got %d", len(categories.byID))
	}
}

func TestCategoryService_Update_RenameToSelfAllowed(t *testing.T) {
	svc, _, _ := newCategoryFixture()
	created, _ := svc.Create(context.Background(), ports.CategoryInput{Name: "Electronics"})

	result, err := svc.Update(context.Background(), created.ID, ports.CategoryInput{
		Name:        "Electronics",
		Description: "Updated description",
	})
	if err != nil {
		t.Fatalf("keeping the current name must be allowed: %v", err)
	}
	if result.Description != "Updated description" {
		t.Errorf("expected updated description, got %q", result.Description)
	}
}

func TestCategoryService_Update_RenameConflict(t *testing.T) {
	svc, _, _ := newCategoryFixture()
	_, _ = svc.Create(context.Background(), ports.CategoryInput{Name: "Electronics"})
	second, _ := svc.Create(context.Background(), ports.CategoryInput{Name: "Office"})

	_, err := svc.Update(context.Background(), second.ID, ports.CategoryInput{Name: "Electronics"})
	if !errors.Is(err, domain.ErrDuplicateCategory) {
		t.Fatalf("expected ErrDuplicateCategory, got %v", err)
	}
}

func TestCategoryService_Update_NotFound(t *testing.T) {
	svc, _, _ := newCategoryFixture()

	_, err := svc.Update(context.Background(), "missing", ports.CategoryInput{Name: "Electronics"})
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCategoryService_Get_IncludesProductCount(t *testing.T) {
	svc, _, products := newCategoryFixture()
	created, _ := svc.Create(context.Background(), ports.CategoryInput{Name: "Electronics"})

	for _, sku := range []string{"SKU-001", "SKU-002"} {
		_, _ = products.Create(context.Background(), &domain.Product{SKU: sku, CategoryID: created.ID})
	}

	result, err := svc.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ProductCount != 2 {
		t.Errorf("expected product count 2, got %d", result.ProductCount)
	}
}

func TestCategoryService_Delete_Success(t *testing.T) {
	svc, categories, _ := newCategoryFixture()
	created, _ := svc.Create(context.Background(), ports.CategoryInput{Name: "Electronics"})

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(categories.byID) != 0 {
		t.Errorf("expected category removed, %d remain", len(categories.byID))
	}
}

func TestCategoryService_Delete_NotFound(t *testing.T) {
	svc, _, _ := newCategoryFixture()

	err := svc.Delete(context.Background(), "missing")
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}
