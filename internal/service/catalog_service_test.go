package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCatalogTest(t *testing.T) (*CatalogService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:catalog_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	models.DB = db

	cfg := &config.Config{}
	return NewCatalogService(cfg, repository.NewProductRepository(db), repository.NewCategoryRepository(db)), db
}

func TestListProductsWithCategory(t *testing.T) {
	svc, db := setupCatalogTest(t)
	createTestProduct(t, db, "earphones", 99.99)
	createTestProduct(t, db, "mug", 15.50)

	products, err := svc.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("products want 2 got %d", len(products))
	}
	for _, product := range products {
		if product.Category.ID == 0 {
			t.Fatalf("category should be preloaded for %s", product.Name)
		}
	}
}

func TestListProductsByCategory(t *testing.T) {
	svc, db := setupCatalogTest(t)
	earphones := createTestProduct(t, db, "earphones", 99.99)
	createTestProduct(t, db, "mug", 15.50)

	products, err := svc.ListProductsByCategory("earphones-category")
	if err != nil {
		t.Fatalf("ListProductsByCategory failed: %v", err)
	}
	if len(products) != 1 || products[0].ID != earphones.ID {
		t.Fatalf("category filter want only %s got %+v", earphones.Name, products)
	}

	if _, err := svc.ListProductsByCategory("no-such-category"); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("unknown slug: want ErrCategoryNotFound got %v", err)
	}
}

func TestGetProductNotFound(t *testing.T) {
	svc, db := setupCatalogTest(t)
	product := createTestProduct(t, db, "cable", 9.99)

	got, err := svc.GetProduct(product.ID)
	if err != nil {
		t.Fatalf("GetProduct failed: %v", err)
	}
	if got.ID != product.ID {
		t.Fatalf("product id want %d got %d", product.ID, got.ID)
	}

	if _, err := svc.GetProduct(9999); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound got %v", err)
	}
}

func TestListCategories(t *testing.T) {
	svc, db := setupCatalogTest(t)
	createTestProduct(t, db, "watch", 199)

	categories, err := svc.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	if len(categories) != 1 {
		t.Fatalf("categories want 1 got %d", len(categories))
	}
}
