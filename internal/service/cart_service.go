package service

import (
	"time"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"
)

// CartItemView 购物车项详情（用于响应）
type CartItemView struct {
	ID        uint            `json:"id"`
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice models.Money    `json:"unit_price"`
	LineTotal models.Money    `json:"line_total"`
	Product   *models.Product `json:"product"`
}

// CartView 购物车详情（用于响应）
type CartView struct {
	ID            uint           `json:"id"`
	Items         []CartItemView `json:"items"`
	TotalQuantity int            `json:"total_quantity"`
	TotalPrice    models.Money   `json:"total_price"`
}

// AddItemInput 加入购物车输入
type AddItemInput struct {
	UserID    uint
	ProductID uint
	Quantity  int
}

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetOrCreateCart 获取用户购物车，不存在时创建空购物车
func (s *CartService) GetOrCreateCart(userID uint) (*CartView, error) {
	cart, err := s.getOrCreate(userID)
	if err != nil {
		return nil, err
	}
	return buildCartView(cart), nil
}

// AddItem 加入购物车；商品已在车内时数量累加
func (s *CartService) AddItem(input AddItemInput) (*CartView, error) {
	if input.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	cart, err := s.getOrCreate(input.UserID)
	if err != nil {
		return nil, err
	}

	existing, err := s.cartRepo.GetItemByCartAndProduct(cart.ID, input.ProductID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if existing != nil {
		if err := s.cartRepo.UpdateItemQuantity(existing.ID, existing.Quantity+input.Quantity, now); err != nil {
			return nil, err
		}
	} else {
		item := &models.CartItem{
			CartID:    cart.ID,
			ProductID: input.ProductID,
			Quantity:  input.Quantity,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.cartRepo.CreateItem(item); err != nil {
			return nil, err
		}
	}

	return s.reload(input.UserID)
}

// AdjustItem 调整购物车项数量（add 加一 / remove 减一，减到零即删除）
func (s *CartService) AdjustItem(userID, itemID uint, action string) (*CartView, error) {
	if action != constants.CartActionAdd && action != constants.CartActionRemove {
		return nil, ErrInvalidAction
	}

	item, err := s.cartRepo.GetItemByIDAndUser(itemID, userID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}

	switch action {
	case constants.CartActionAdd:
		if err := s.cartRepo.UpdateItemQuantity(item.ID, item.Quantity+1, time.Now()); err != nil {
			return nil, err
		}
	case constants.CartActionRemove:
		if item.Quantity <= 1 {
			if err := s.cartRepo.DeleteItem(item.ID); err != nil {
				return nil, err
			}
		} else {
			if err := s.cartRepo.UpdateItemQuantity(item.ID, item.Quantity-1, time.Now()); err != nil {
				return nil, err
			}
		}
	}

	return s.reload(userID)
}

// RemoveItem 删除购物车项（无论剩余数量）
func (s *CartService) RemoveItem(userID, itemID uint) (*CartView, error) {
	item, err := s.cartRepo.GetItemByIDAndUser(itemID, userID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}
	if err := s.cartRepo.DeleteItem(item.ID); err != nil {
		return nil, err
	}
	return s.reload(userID)
}

// Clear 清空购物车；购物车不存在或已空时同样成功
func (s *CartService) Clear(userID uint) error {
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return err
	}
	if cart == nil {
		return nil
	}
	return s.cartRepo.DeleteItemsByCart(cart.ID)
}

func (s *CartService) getOrCreate(userID uint) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}

	now := time.Now()
	cart = &models.Cart{
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.cartRepo.Create(cart); err != nil {
		return nil, err
	}
	cart.Items = []models.CartItem{}
	return cart, nil
}

func (s *CartService) reload(userID uint) (*CartView, error) {
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}
	return buildCartView(cart), nil
}

func buildCartView(cart *models.Cart) *CartView {
	view := &CartView{
		ID:         cart.ID,
		Items:      make([]CartItemView, 0, len(cart.Items)),
		TotalPrice: models.ZeroMoney(),
	}
	for _, item := range cart.Items {
		unitPrice := models.ZeroMoney()
		if item.Product != nil {
			unitPrice = item.Product.Price
		}
		lineTotal := unitPrice.MulQuantity(item.Quantity)
		view.Items = append(view.Items, CartItemView{
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
