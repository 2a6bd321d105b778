package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product 商品表（购物车子系统只读）
type Product struct {
	ID          uint            `gorm:"primarykey" json:"id"`                              // 主键
	CategoryID  uint            `gorm:"not null;index" json:"category_id"`                 // 分类ID
	Name        string          `gorm:"not null" json:"name"`                              // 商品名称
	Description string          `gorm:"type:text" json:"description"`                      // 商品描述
	Price       Money           `gorm:"type:decimal(10,2);not null;default:0" json:"price"` // 价格
	ImagePath   string          `gorm:"type:varchar(500)" json:"image"`                    // 图片路径
	InStock     bool            `gorm:"default:true;index" json:"in_stock"`               // 是否有货
	Quantity    int             `gorm:"not null;default:0" json:"quantity"`                // 库存数量（非负）
	Rating      decimal.Decimal `gorm:"type:decimal(3,2);default:4.5" json:"rating"`       // 评分
	CreatedAt   time.Time       `gorm:"index" json:"created_at"`                           // 创建时间
	UpdatedAt   time.Time       `json:"updated_at"`                                        // 更新时间
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`                                    // 软删除时间

	// 关联
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
