package service

import "errors"

// 服务层错误定义
var (
	ErrProductNotFound     = errors.New("商品不存在")
	ErrCategoryNotFound    = errors.New("分类不存在")
	ErrCartNotFound        = errors.New("购物车不存在")
	ErrCartItemNotFound    = errors.New("购物车项不存在")
	ErrOrderNotFound       = errors.New("订单不存在")
	ErrInvalidAction       = errors.New("无效的操作类型")
	ErrInvalidQuantity     = errors.New("无效的商品数量")
	ErrEmptyCart           = errors.New("购物车为空")
	ErrCheckoutFailed      = errors.New("结算失败")
	ErrUsernameExists      = errors.New("用户名已存在")
	ErrInvalidCredentials  = errors.New("用户名或密码错误")
	ErrInvalidToken        = errors.New("无效的 token")
	ErrUserDisabled        = errors.New("账号已被禁用")
	ErrInvalidRegistration = errors.New("注册信息不完整")
)
