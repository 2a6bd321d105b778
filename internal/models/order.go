package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表（结算生成的不可变历史记录）
type Order struct {
	ID        uint           `gorm:"primarykey" json:"id"`           // 主键
	UserID    *uint          `gorm:"index" json:"customer"`          // 下单用户（用户删除后置空保留订单）
	IsOrdered bool           `gorm:"not null;index" json:"is_ordered"` // 是否已下单
	Status    string         `gorm:"index;not null" json:"status"`   // 订单状态
	CreatedAt time.Time      `gorm:"index" json:"created_at"`        // 创建时间（一次写入，不再变更）
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                 // 软删除时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// OrderItem 订单项表
// 结算时按值复制购物车项（商品ID + 数量），创建后不可变。
type OrderItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`    // 主键
	OrderID   *uint          `gorm:"index" json:"order_id"`   // 订单ID（订单删除后置空）
	ProductID *uint          `gorm:"index" json:"product_id"` // 商品ID（商品删除后置空，小计回退为 0）
	Quantity  int            `gorm:"not null" json:"quantity"` // 数量
	CreatedAt time.Time      `gorm:"index" json:"created_at"` // 创建时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`          // 软删除时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
