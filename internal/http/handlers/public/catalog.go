package public

import (
	"errors"
	"strconv"
	"strings"

	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListProducts 获取商品列表；可用 ?category=<slug> 按分类过滤
func (h *Handler) ListProducts(c *gin.Context) {
	if slug := strings.TrimSpace(c.Query("category")); slug != "" {
		products, err := h.CatalogService.ListProductsByCategory(slug)
		if err != nil {
			if errors.Is(err, service.ErrCategoryNotFound) {
				respondError(c, response.CodeNotFound, "category not found", nil)
				return
			}
			respondError(c, response.CodeInternal, "product list failed", err)
			return
		}
		response.Success(c, gin.H{"products": products})
		return
	}

	products, err := h.CatalogService.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "product list failed", err)
		return
	}
	response.Success(c, gin.H{"products": products})
}

// GetProduct 获取商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	rawID := c.Param("id")
	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeNotFound, "product not found", nil)
		return
	}
	product, err := h.CatalogService.GetProduct(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "product fetch failed", err)
		return
	}
	response.Success(c, gin.H{"product": product})
}

// ListCategories 获取分类列表
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CatalogService.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "category list failed", err)
		return
	}
	response.Success(c, gin.H{"categories": categories})
}
