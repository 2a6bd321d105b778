package main

import (
	"context"

	"github.com/storefront-next/internal/cache"
	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加分类
	categories := []models.Category{
		{Name: "Electronics", Slug: "electronics"},
		{Name: "Lifestyle", Slug: "lifestyle"},
		{Name: "Accessories", Slug: "accessories"},
	}

	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			// 不存在则创建
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	// 获取分类ID
	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Where("slug IN ?", []string{"electronics", "lifestyle", "accessories"}).Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}

	// 添加商品
	products := []models.Product{
		{
			Name:        "Wireless Bluetooth Earphones",
			Description: "High quality sound, long battery life, comfortable to wear",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(99.99)),
			CategoryID:  categoryIDs["electronics"],
			ImagePath:   "photos/products/earphones.jpg",
			InStock:     true,
			Quantity:    120,
		},
		{
			Name:        "Smart Watch",
			Description: "Fitness tracking, heart rate monitoring, message notifications",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(199.00)),
			CategoryID:  categoryIDs["electronics"],
			ImagePath:   "photos/products/smart-watch.jpg",
			InStock:     true,
			Quantity:    60,
		},
		{
			Name:        "Ceramic Coffee Mug",
			Description: "350ml double-walled ceramic mug, keeps drinks warm",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(15.50)),
			CategoryID:  categoryIDs["lifestyle"],
			ImagePath:   "photos/products/coffee-mug.jpg",
			InStock:     true,
			Quantity:    300,
		},
		{
			Name:        "USB-C Charging Cable",
			Description: "1.5m braided cable, fast charging supported",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(9.99)),
			CategoryID:  categoryIDs["accessories"],
			ImagePath:   "photos/products/usb-c-cable.jpg",
			InStock:     true,
			Quantity:    500,
		},
		{
			Name:        "Laptop Sleeve 14-inch",
			Description: "Water resistant neoprene sleeve with accessory pocket",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(24.90)),
			CategoryID:  categoryIDs["accessories"],
			ImagePath:   "photos/products/laptop-sleeve.jpg",
			InStock:     true,
			Quantity:    150,
		},
	}

	for _, product := range products {
		var existing models.Product
		if err := models.DB.Where("name = ?", product.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", product.Name, err)
			} else {
				stdLog.Printf("Created product: %s", product.Name)
			}
		} else {
			stdLog.Printf("Product already exists: %s", product.Name)
		}
	}

	// 清理目录缓存，让新数据立即可见
	if err := cache.InitRedis(&cfg.Redis); err == nil && cache.Enabled() {
		ctx := context.Background()
		_ = cache.Del(ctx, "catalog:products")
		_ = cache.Del(ctx, "catalog:categories")
	}

	stdLog.Printf("Seed finished")
}
