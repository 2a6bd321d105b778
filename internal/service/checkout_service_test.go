package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCheckoutTest(t *testing.T, migrations ...interface{}) (*CheckoutService, *CartService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:checkout_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if len(migrations) == 0 {
		migrations = []interface{}{
			&models.User{}, &models.Category{}, &models.Product{},
			&models.Cart{}, &models.CartItem{}, &models.Order{}, &models.OrderItem{},
		}
	}
	if err := db.AutoMigrate(migrations...); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	models.DB = db

	cfg := &config.Config{}
	cartRepo := repository.NewCartRepository(db)
	checkout := NewCheckoutService(cfg, cartRepo, repository.NewOrderRepository(db))
	carts := NewCartService(cartRepo, repository.NewProductRepository(db))
	return checkout, carts, db
}

func TestCheckoutCreatesOrderAndClearsCart(t *testing.T) {
	checkout, carts, db := setupCheckoutTest(t)
	earphones := createTestProduct(t, db, "earphones", 99.99)
	cable := createTestProduct(t, db, "cable", 9.99)

	if _, err := carts.AddItem(AddItemInput{UserID: 1, ProductID: earphones.ID, Quantity: 2}); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if _, err := carts.AddItem(AddItemInput{UserID: 1, ProductID: cable.ID, Quantity: 3}); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	order, err := checkout.Checkout(context.Background(), 1)
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}
	if order.Status != constants.OrderStatusCompleted {
		t.Fatalf("order status want Completed got %s", order.Status)
	}
	if !order.IsOrdered {
		t.Fatalf("order should be marked as ordered")
	}
	if len(order.Items) != 2 {
		t.Fatalf("order items want 2 got %d", len(order.Items))
	}
	if order.TotalQuantity != 5 {
		t.Fatalf("total quantity want 5 got %d", order.TotalQuantity)
	}
	want := models.NewMoneyFromDecimal(decimal.NewFromFloat(229.95))
	if !order.TotalPrice.Decimal.Equal(want.Decimal) {
		t.Fatalf("total price want %s got %s", want, order.TotalPrice)
	}

	// 结算后购物车清空，但购物车本身保留
	cart, err := carts.GetOrCreateCart(1)
	if err != nil {
		t.Fatalf("GetOrCreateCart failed: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("cart should be empty after checkout, got %d items", len(cart.Items))
	}
}

func TestCheckoutEmptyCartRejectedWithoutSideEffects(t *testing.T) {
	checkout, carts, db := setupCheckoutTest(t)

	// 没有购物车：与空购物车是两种不同的失败
	if _, err := checkout.Checkout(context.Background(), 1); !errors.Is(err, ErrCartNotFound) {
		t.Fatalf("no cart: want ErrCartNotFound got %v", err)
	}

	// 有购物车但为空
	if _, err := carts.GetOrCreateCart(1); err != nil {
		t.Fatalf("GetOrCreateCart failed: %v", err)
	}
	if _, err := checkout.Checkout(context.Background(), 1); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("empty cart: want ErrEmptyCart got %v", err)
	}

	var orderCount int64
	if err := db.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if orderCount != 0 {
		t.Fatalf("empty checkout must not create orders, got %d", orderCount)
	}
}

func TestCheckoutRollsBackOnStorageFault(t *testing.T) {
	// 缺少 order_items 表，订单项写入必然失败
	checkout, carts, db := setupCheckoutTest(t,
		&models.User{}, &models.Category{}, &models.Product{},
		&models.Cart{}, &models.CartItem{}, &models.Order{},
	)
	product := createTestProduct(t, db, "watch", 199)

	if _, err := carts.AddItem(AddItemInput{UserID: 1, ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	if _, err := checkout.Checkout(context.Background(), 1); err == nil {
		t.Fatalf("checkout should fail when order items cannot be written")
	}

	var orderCount int64
	if err := db.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if orderCount != 0 {
		t.Fatalf("failed checkout must roll back the order, got %d orders", orderCount)
	}

	cart, err := carts.GetOrCreateCart(1)
	if err != nil {
		t.Fatalf("GetOrCreateCart failed: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 2 {
		t.Fatalf("failed checkout must keep cart intact, got %+v", cart.Items)
	}
}

func TestListOrdersNewestFirst(t *testing.T) {
	checkout, carts, db := setupCheckoutTest(t)
	product := createTestProduct(t, db, "mug", 15.50)

	if _, err := carts.AddItem(AddItemInput{UserID: 1, ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	first, err := checkout.Checkout(context.Background(), 1)
	if err != nil {
		t.Fatalf("first checkout failed: %v", err)
	}

	if _, err := carts.AddItem(AddItemInput{UserID: 1, ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	second, err := checkout.Checkout(context.Background(), 1)
	if err != nil {
		t.Fatalf("second checkout failed: %v", err)
	}

	orders, err := checkout.ListOrders(1)
	if err != nil {
		t.Fatalf("ListOrders failed: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("orders want 2 got %d", len(orders))
	}
	if orders[0].ID != second.ID || orders[1].ID != first.ID {
		t.Fatalf("orders should be newest first, got %d then %d", orders[0].ID, orders[1].ID)
	}
}

func TestGetOrderScopedToUser(t *testing.T) {
	checkout, carts, db := setupCheckoutTest(t)
	product := createTestProduct(t, db, "sleeve", 24.90)

	if _, err := carts.AddItem(AddItemInput{UserID: 1, ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	order, err := checkout.Checkout(context.Background(), 1)
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}

	if _, err := checkout.GetOrder(2, order.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("cross user order lookup: want ErrOrderNotFound got %v", err)
	}
	got, err := checkout.GetOrder(1, order.ID)
	if err != nil {
		t.Fatalf("GetOrder failed: %v", err)
	}
	if got.ID != order.ID {
		t.Fatalf("order id want %d got %d", order.ID, got.ID)
	}
}
