package public

import (
	"strconv"

	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加入购物车请求
// quantity 省略时默认为 1；显式传入的非正数量由服务层拒绝。
type AddCartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  *int `json:"quantity"`
}

// AdjustCartItemRequest 调整购物车项请求
type AdjustCartItemRequest struct {
	Action string `json:"action" binding:"required"`
}

// GetCart 获取购物车（不存在时创建空购物车）
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	cart, err := h.CartService.GetOrCreateCart(uid)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{"cart": cart})
}

// AddCartItem 加入购物车；同一商品重复加入时数量合并
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	cart, err := h.CartService.AddItem(service.AddItemInput{
		UserID:    uid,
		ProductID: req.ProductID,
		Quantity:  quantity,
	})
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Created(c, gin.H{"cart": cart})
}

// AdjustCartItem 逐一增减购物车项数量；减到零即删除整行
func (h *Handler) AdjustCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	itemID, ok := parseItemID(c)
	if !ok {
		return
	}
	var req AdjustCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	cart, err := h.CartService.AdjustItem(uid, itemID, req.Action)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{"cart": cart})
}

// DeleteCartItem 删除购物车项（无论剩余数量）
func (h *Handler) DeleteCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	itemID, ok := parseItemID(c)
	if !ok {
		return
	}
	cart, err := h.CartService.RemoveItem(uid, itemID)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{"cart": cart})
}

// ClearCart 清空购物车；购物车不存在或已空同样视为成功
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.CartService.Clear(uid); err != nil {
		respondCartError(c, err)
		return
	}
	response.NoContent(c)
}

func parseItemID(c *gin.Context) (uint, bool) {
	rawID := c.Param("item_id")
	itemID, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || itemID == 0 {
		// 非法 ID 与不存在的项表现一致
		respondError(c, response.CodeNotFound, "cart item not found", nil)
		return 0, false
	}
	return uint(itemID), true
}
