package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/storefront-next/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCartRepositoryTest(t *testing.T) (*GormCartRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:cart_repository_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Category{}, &models.Product{}, &models.Cart{}, &models.CartItem{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return NewCartRepository(db), db
}

func createRepoTestProduct(t *testing.T, db *gorm.DB, name string) *models.Product {
	t.Helper()
	category := &models.Category{Name: name + " category", Slug: name + "-category"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product := &models.Product{
		CategoryID: category.ID,
		Name:       name,
		Price:      models.NewMoneyFromDecimal(decimal.NewFromFloat(19.99)),
		InStock:    true,
		Quantity:   10,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestGetItemByIDAndUserScoping(t *testing.T) {
	repo, db := setupCartRepositoryTest(t)
	product := createRepoTestProduct(t, db, "earphones")

	cart := &models.Cart{UserID: 1}
	if err := repo.Create(cart); err != nil {
		t.Fatalf("create cart failed: %v", err)
	}
	item := &models.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 2}
	if err := repo.CreateItem(item); err != nil {
		t.Fatalf("create item failed: %v", err)
	}

	got, err := repo.GetItemByIDAndUser(item.ID, 1)
	if err != nil {
		t.Fatalf("GetItemByIDAndUser failed: %v", err)
	}
	if got == nil || got.ID != item.ID {
		t.Fatalf("owner lookup want item %d got %+v", item.ID, got)
	}

	// 其他用户查不到该项
	got, err = repo.GetItemByIDAndUser(item.ID, 2)
	if err != nil {
		t.Fatalf("cross user lookup errored: %v", err)
	}
	if got != nil {
		t.Fatalf("cross user lookup should return nil, got %+v", got)
	}

	// 不存在的项返回 nil 而不是错误
	got, err = repo.GetItemByIDAndUser(9999, 1)
	if err != nil {
		t.Fatalf("missing item lookup errored: %v", err)
	}
	if got != nil {
		t.Fatalf("missing item lookup should return nil, got %+v", got)
	}
}

func TestGetByUserPreloadsOrderedItems(t *testing.T) {
	repo, db := setupCartRepositoryTest(t)
	first := createRepoTestProduct(t, db, "cable")
	second := createRepoTestProduct(t, db, "mug")

	cart := &models.Cart{UserID: 1}
	if err := repo.Create(cart); err != nil {
		t.Fatalf("create cart failed: %v", err)
	}
	if err := repo.CreateItem(&models.CartItem{CartID: cart.ID, ProductID: first.ID, Quantity: 1}); err != nil {
		t.Fatalf("create item failed: %v", err)
	}
	if err := repo.CreateItem(&models.CartItem{CartID: cart.ID, ProductID: second.ID, Quantity: 3}); err != nil {
		t.Fatalf("create item failed: %v", err)
	}

	got, err := repo.GetByUser(1)
	if err != nil {
		t.Fatalf("GetByUser failed: %v", err)
	}
	if got == nil || len(got.Items) != 2 {
		t.Fatalf("cart want 2 items got %+v", got)
	}
	if got.Items[0].ID > got.Items[1].ID {
		t.Fatalf("items should be ordered by id asc")
	}
	if got.Items[0].Product == nil || got.Items[0].Product.ID != first.ID {
		t.Fatalf("product should be preloaded, got %+v", got.Items[0].Product)
	}

	// 没有购物车的用户返回 nil 而不是错误
	missing, err := repo.GetByUser(42)
	if err != nil {
		t.Fatalf("GetByUser for unknown user errored: %v", err)
	}
	if missing != nil {
		t.Fatalf("unknown user cart should be nil, got %+v", missing)
	}
}

func TestDeleteItemsByCartOnlyTouchesOwnCart(t *testing.T) {
	repo, db := setupCartRepositoryTest(t)
	product := createRepoTestProduct(t, db, "watch")

	mine := &models.Cart{UserID: 1}
	theirs := &models.Cart{UserID: 2}
	if err := repo.Create(mine); err != nil {
		t.Fatalf("create cart failed: %v", err)
	}
	if err := repo.Create(theirs); err != nil {
		t.Fatalf("create cart failed: %v", err)
	}
	if err := repo.CreateItem(&models.CartItem{CartID: mine.ID, ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("create item failed: %v", err)
	}
	if err := repo.CreateItem(&models.CartItem{CartID: theirs.ID, ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("create item failed: %v", err)
	}

	if err := repo.DeleteItemsByCart(mine.ID); err != nil {
		t.Fatalf("DeleteItemsByCart failed: %v", err)
	}

	var count int64
	if err := db.Model(&models.CartItem{}).Where("cart_id = ?", mine.ID).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("own cart items want 0 got %d", count)
	}
	if err := db.Model(&models.CartItem{}).Where("cart_id = ?", theirs.ID).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("other cart items want 1 got %d", count)
	}
}
