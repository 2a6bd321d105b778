package service

import (
	"context"
	"time"

	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"

	"gorm.io/gorm"
)

// OrderItemView 订单项详情（用于响应）
type OrderItemView struct {
	ID        uint            `json:"id"`
	ProductID *uint           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice models.Money    `json:"unit_price"`
	LineTotal models.Money    `json:"line_total"`
	Product   *models.Product `json:"product,omitempty"`
}

// OrderView 订单详情（用于响应）
type OrderView struct {
	ID            uint            `json:"id"`
	Status        string          `json:"status"`
	IsOrdered     bool            `json:"is_ordered"`
	CreatedAt     time.Time       `json:"created_at"`
	Items         []OrderItemView `json:"items"`
	TotalQuantity int             `json:"total_quantity"`
	TotalPrice    models.Money    `json:"total_price"`
}

// CheckoutService 结算服务
// 结算是原子操作：订单与订单项写入、购物车清空要么全部生效，要么全部回滚。
type CheckoutService struct {
	cfg       *config.Config
	cartRepo  repository.CartRepository
	orderRepo repository.OrderRepository
}

// NewCheckoutService 创建结算服务
func NewCheckoutService(cfg *config.Config, cartRepo repository.CartRepository, orderRepo repository.OrderRepository) *CheckoutService {
	return &CheckoutService{
		cfg:       cfg,
		cartRepo:  cartRepo,
		orderRepo: orderRepo,
	}
}

// Checkout 将购物车结算为订单
// 购物车不存在与购物车为空是两种失败：前者 404，后者 400；均不产生任何写入。
func (s *CheckoutService) Checkout(ctx context.Context, userID uint) (*OrderView, error) {
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	now := time.Now()
	order := &models.Order{
		UserID:    &userID,
		IsOrdered: true,
		Status:    constants.OrderStatusCompleted,
		CreatedAt: now,
	}
	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, cartItem := range cart.Items {
		productID := cartItem.ProductID
		items = append(items, models.OrderItem{
			ProductID: &productID,
			Quantity:  cartItem.Quantity,
			CreatedAt: now,
		})
	}

	txCtx, cancel := context.WithTimeout(ctx, resolveCheckoutTimeout(s.cfg.Checkout))
	defer cancel()

	err = models.DB.WithContext(txCtx).Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		cartRepo := s.cartRepo.WithTx(tx)

		if err := orderRepo.Create(order, items); err != nil {
			return err
		}
		return cartRepo.DeleteItemsByCart(cart.ID)
	})
	if err != nil {
		return nil, err
	}

	created, err := s.orderRepo.GetByIDAndUser(order.ID, userID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, ErrCheckoutFailed
	}
	return buildOrderView(created), nil
}

// ListOrders 获取用户订单列表（新订单在前）
func (s *CheckoutService) ListOrders(userID uint) ([]OrderView, error) {
	orders, err := s.orderRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	views := make([]OrderView, 0, len(orders))
	for i := range orders {
		views = append(views, *buildOrderView(&orders[i]))
	}
	return views, nil
}

// GetOrder 获取用户订单详情
func (s *CheckoutService) GetOrder(userID, orderID uint) (*OrderView, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return buildOrderView(order), nil
}

func buildOrderView(order *models.Order) *OrderView {
	view := &OrderView{
		ID:         order.ID,
		Status:     order.Status,
		IsOrdered:  order.IsOrdered,
		CreatedAt:  order.CreatedAt,
		Items:      make([]OrderItemView, 0, len(order.Items)),
		TotalPrice: models.ZeroMoney(),
	}
	for _, item := range order.Items {
		// 商品被删除后单价按 0 计，订单项本身保留
		unitPrice := models.ZeroMoney()
		if item.Product != nil {
			unitPrice = item.Product.Price
		}
		lineTotal := unitPrice.MulQuantity(item.Quantity)
		view.Items = append(view.Items, OrderItemView{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: unitPrice,
			LineTotal: lineTotal,
			Product:   item.Product,
		})
		view.TotalQuantity += item.Quantity
		view.TotalPrice = view.TotalPrice.Add(lineTotal)
	}
	return view
}

func resolveCheckoutTimeout(cfg config.CheckoutConfig) time.Duration {
	if cfg.TransactionTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(cfg.TransactionTimeoutSeconds) * time.Second
}
