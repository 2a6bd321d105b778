package service

import (
	"context"
	"time"

	"github.com/storefront-next/internal/cache"
	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"
)

const (
	cacheKeyProducts   = "catalog:products"
	cacheKeyCategories = "catalog:categories"
)

// CatalogService 商品目录服务（购物车子系统只读）
type CatalogService struct {
	cfg          *config.Config
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewCatalogService 创建商品目录服务
func NewCatalogService(cfg *config.Config, productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *CatalogService {
	return &CatalogService{
		cfg:          cfg,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// ListProducts 获取商品列表（带 Redis 缓存）
func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	var cached []models.Product
	hit, err := cache.GetJSON(ctx, cacheKeyProducts, &cached)
	if err != nil {
		logger.Warnw("catalog_cache_read_failed", "key", cacheKeyProducts, "error", err)
	}
	if hit {
		return cached, nil
	}

	products, err := s.productRepo.List()
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, cacheKeyProducts, products, s.cacheTTL()); err != nil {
		logger.Warnw("catalog_cache_write_failed", "key", cacheKeyProducts, "error", err)
	}
	return products, nil
}

// ListProductsByCategory 按分类 slug 获取商品列表
// 过滤结果不走缓存，只有全量列表才缓存。
func (s *CatalogService) ListProductsByCategory(slug string) ([]models.Product, error) {
	category, err := s.categoryRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return s.productRepo.ListByCategory(category.ID)
}

// GetProduct 获取商品详情
func (s *CatalogService) GetProduct(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// ListCategories 获取分类列表（带 Redis 缓存）
func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	var cached []models.Category
	hit, err := cache.GetJSON(ctx, cacheKeyCategories, &cached)
	if err != nil {
		logger.Warnw("catalog_cache_read_failed", "key", cacheKeyCategories, "error", err)
	}
	if hit {
		return cached, nil
	}

	categories, err := s.categoryRepo.List()
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, cacheKeyCategories, categories, s.cacheTTL()); err != nil {
		logger.Warnw("catalog_cache_write_failed", "key", cacheKeyCategories, "error", err)
	}
	return categories, nil
}

func (s *CatalogService) cacheTTL() time.Duration {
	if s.cfg.Catalog.CacheTTLSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(s.cfg.Catalog.CacheTTLSeconds) * time.Second
}
