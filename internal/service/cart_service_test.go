package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (*CartService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:cart_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Category{}, &models.Product{}, &models.Cart{}, &models.CartItem{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	models.DB = db
	return NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db)), db
}

func createTestProduct(t *testing.T, db *gorm.DB, name string, price float64) *models.Product {
	t.Helper()
	category := &models.Category{Name: name + " category", Slug: name + "-category"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product := &models.Product{
		CategoryID:  category.ID,
		Name:        name,
		Description: "test product",
		Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(price)),
		InStock:     true,
		Quantity:    10,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestGetOrCreateCartIdempotent(t *testing.T) {
	svc, _ := setupCartServiceTest(t)

	first, err := svc.GetOrCreateCart(1)
	if err != nil {
		t.Fatalf("first GetOrCreateCart failed: %v", err)
	}
	if first.ID == 0 {
		t.Fatalf("expected cart to be created")
	}
	if len(first.Items) != 0 {
		t.Fatalf("new cart should be empty, got %d items", len(first.Items))
	}
	if !first.TotalPrice.Decimal.IsZero() {
		t.Fatalf("new cart total should be zero, got %s", first.TotalPrice)
	}

	second, err := svc.GetOrCreateCart(1)
	if err != nil {
		t.Fatalf("second GetOrCreateCart failed: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("repeated calls should return same cart: %d vs %d", first.ID, second.ID)
	}
}

func TestAddItemAggregatesQuantity(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createTestProduct(t, db, "earphones", 99.99)

	if _, err := svc.AddItem(AddItemInput{UserID: 1, ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("first AddItem failed: %v", err)
	}
	cart, err := svc.AddItem(AddItemInput{UserID: 1, ProductID: product.ID, Quantity: 3})
	if err != nil {
		t.Fatalf("second AddItem failed: %v", err)
	}

	if len(cart.Items) != 1 {
		t.Fatalf("same product should merge into one row, got %d", len(cart.Items))
	}
	if cart.Items[0].Quantity != 5 {
		t.Fatalf("quantity want 5 got %d", cart.Items[0].Quantity)
	}
	if cart.TotalQuantity != 5 {
		t.Fatalf("total quantity want 5 got %d", cart.TotalQuantity)
	}
	want := models.NewMoneyFromDecimal(decimal.NewFromFloat(499.95))
	if !cart.TotalPrice.Decimal.Equal(want.Decimal) {
		t.Fatalf("total price want %s got %s", want, cart.TotalPrice)
	}
}

func TestAddItemUnknownProduct(t *testing.T) {
	svc, _ := setupCartServiceTest(t)

	_, err := svc.AddItem(AddItemInput{UserID: 1, ProductID: 999, Quantity: 1})
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound got %v", err)
	}
}

func TestAddItemInvalidQuantity(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createTestProduct(t, db, "mug", 15.50)

	for _, quantity := range []int{0, -1} {
		if _, err := svc.AddItem(AddItemInput{UserID: 1, ProductID: product.ID, Quantity: quantity}); !errors.Is(err, ErrInvalidQuantity) {
			t.Fatalf("quantity %d: want ErrInvalidQuantity got %v", quantity, err)
		}
	}
}

func TestAdjustItemAddAndRemove(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createTestProduct(t, db, "cable", 9.99)

	cart, err := svc.AddItem(AddItemInput{UserID: 1, ProductID: product.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	itemID := cart.Items[0].ID

	cart, err = svc.AdjustItem(1, itemID, constants.CartActionAdd)
	if err != nil {
		t.Fatalf("AdjustItem add failed: %v", err)
	}
	if cart.Items[0].Quantity != 2 {
		t.Fatalf("quantity after add want 2 got %d", cart.Items[0].Quantity)
	}

	cart, err = svc.AdjustItem(1, itemID, constants.CartActionRemove)
	if err != nil {
		t.Fatalf("AdjustItem remove failed: %v", err)
	}
	if cart.Items[0].Quantity != 1 {
		t.Fatalf("quantity after remove want 1 got %d", cart.Items[0].Quantity)
	}
}

func TestAdjustItemRemoveDeletesAtZero(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createTestProduct(t, db, "watch", 199)

	cart, err := svc.AddItem(AddItemInput{UserID: 1, ProductID: product.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	itemID := cart.Items[0].ID

	cart, err = svc.AdjustItem(1, itemID, constants.CartActionRemove)
	if err != nil {
		t.Fatalf("AdjustItem remove failed: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("item at quantity 1 should be deleted on remove, got %d items", len(cart.Items))
	}

	var count int64
	if err := db.Model(&models.CartItem{}).Count(&count).Error; err != nil {
		t.Fatalf("count cart items failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("cart_items rows want 0 got %d", count)
	}
}

func TestAdjustItemInvalidAction(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createTestProduct(t, db, "sleeve", 24.90)

	cart, err := svc.AddItem(AddItemInput{UserID: 1, ProductID: product.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	if _, err := svc.AdjustItem(1, cart.Items[0].ID, "increase"); !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("want ErrInvalidAction got %v", err)
	}
}

func TestAdjustItemCrossUserIndistinguishableFromMissing(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createTestProduct(t, db, "keyboard", 59)

	cart, err := svc.AddItem(AddItemInput{UserID: 1, ProductID: product.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	// 其他用户操作该项与操作不存在的项返回相同错误
	if _, err := svc.AdjustItem(2, cart.Items[0].ID, constants.CartActionAdd); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("cross user adjust: want ErrCartItemNotFound got %v", err)
	}
	if _, err := svc.RemoveItem(2, cart.Items[0].ID); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("cross user remove: want ErrCartItemNotFound got %v", err)
	}
	if _, err := svc.AdjustItem(1, 9999, constants.CartActionAdd); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("missing item adjust: want ErrCartItemNotFound got %v", err)
	}
}

func TestRemoveItemDeletesWholeRow(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createTestProduct(t, db, "charger", 19.99)

	cart, err := svc.AddItem(AddItemInput{UserID: 1, ProductID: product.ID, Quantity: 5})
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	cart, err = svc.RemoveItem(1, cart.Items[0].ID)
	if err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("remove should delete the row regardless of quantity, got %d items", len(cart.Items))
	}
}

func TestClearIdempotent(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createTestProduct(t, db, "stand", 34.90)

	// 购物车不存在时清空也应成功
	if err := svc.Clear(7); err != nil {
		t.Fatalf("clear without cart failed: %v", err)
	}

	if _, err := svc.AddItem(AddItemInput{UserID: 1, ProductID: product.ID, Quantity: 3}); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if err := svc.Clear(1); err != nil {
		t.Fatalf("first clear failed: %v", err)
	}
	if err := svc.Clear(1); err != nil {
		t.Fatalf("second clear failed: %v", err)
	}

	cart, err := svc.GetOrCreateCart(1)
	if err != nil {
		t.Fatalf("GetOrCreateCart failed: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("cart should be empty after clear, got %d items", len(cart.Items))
	}
}
