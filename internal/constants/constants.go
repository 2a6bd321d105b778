package constants

// 订单状态常量
// 订单只在结算时创建，状态固定为 Completed；
// 旧版把购物车也存成订单（状态 "In Cart"），新模型已用 Cart/CartItem 取代。
const (
	OrderStatusCompleted = "Completed"
)

// 购物车项调整动作常量
const (
	CartActionAdd    = "add"
	CartActionRemove = "remove"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// Token 类型常量（JWT type 声明）
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)
