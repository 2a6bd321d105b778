package repository

import (
	"errors"

	"github.com/storefront-next/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口（购物车子系统只读）
type ProductRepository interface {
	GetByID(id uint) (*models.Product, error)
	List() ([]models.Product, error)
	ListByCategory(categoryID uint) ([]models.Product, error)
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// GetByID 根据 ID 获取商品
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Category").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// List 获取全部商品
func (r *GormProductRepository) List() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Preload("Category").Order("id asc").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListByCategory 获取指定分类下的商品
func (r *GormProductRepository) ListByCategory(categoryID uint) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Preload("Category").Where("category_id = ?", categoryID).Order("id asc").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}
