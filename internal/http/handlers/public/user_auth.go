package public

import (
	"github.com/storefront-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// RegisterRequest 用户注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

// TokenRequest 获取 token 请求
type TokenRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest 刷新 token 请求
type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// Register 用户注册
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	user, err := h.UserAuthService.Register(req.Username, req.Email, req.Password)
	if err != nil {
		respondAuthError(c, err)
		return
	}
	response.Created(c, gin.H{
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

// IssueToken 校验用户名密码并签发 token 对
func (h *Handler) IssueToken(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	pair, err := h.UserAuthService.IssueTokenPair(req.Username, req.Password)
	if err != nil {
		respondAuthError(c, err)
		return
	}
	response.Success(c, pair)
}

// RefreshToken 刷新 token 对
func (h *Handler) RefreshToken(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	pair, err := h.UserAuthService.Refresh(req.Refresh)
	if err != nil {
		respondAuthError(c, err)
		return
	}
	response.Success(c, pair)
}
