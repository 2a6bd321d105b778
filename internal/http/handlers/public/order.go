package public

import (
	"strconv"

	"github.com/storefront-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// Checkout 结算购物车生成订单
func (h *Handler) Checkout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	order, err := h.CheckoutService.Checkout(c.Request.Context(), uid)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	response.Created(c, gin.H{"order": order})
}

// ListOrders 获取订单列表（新订单在前）
func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orders, err := h.CheckoutService.ListOrders(uid)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	response.Success(c, gin.H{"orders": orders})
}

// GetOrder 获取订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	rawID := c.Param("id")
	orderID, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeNotFound, "order not found", nil)
		return
	}
	order, svcErr := h.CheckoutService.GetOrder(uid, uint(orderID))
	if svcErr != nil {
		respondCheckoutError(c, svcErr)
		return
	}
	response.Success(c, gin.H{"order": order})
}
