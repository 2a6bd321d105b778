package router

import (
	"fmt"
	"strings"

	"github.com/storefront-next/internal/cache"
	"github.com/storefront-next/internal/config"
	publichandlers "github.com/storefront-next/internal/http/handlers/public"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
// 路径与原有客户端保持兼容（资源路径带结尾斜杠）。
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "sf"
	}
	redisClient := cache.Client()
	tokenRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:token", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "too many login attempts",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 目录（公开）
	r.GET("/products/", publicHandler.ListProducts)
	r.GET("/products/:id/", publicHandler.GetProduct)
	r.GET("/categories/", publicHandler.ListCategories)

	// 认证
	r.POST("/register/", publicHandler.Register)
	r.POST("/token/", RateLimitMiddleware(redisClient, tokenRule, KeyByIPAndJSONField("username")), publicHandler.IssueToken)
	r.POST("/token/refresh/", publicHandler.RefreshToken)

	// 购物车与订单（需鉴权）
	user := r.Group("")
	user.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
	{
		user.GET("/cart/", publicHandler.GetCart)
		user.POST("/cart/", publicHandler.AddCartItem)
		user.PATCH("/cart/item/:item_id/", publicHandler.AdjustCartItem)
		user.DELETE("/cart/item/:item_id/", publicHandler.DeleteCartItem)
		user.POST("/cart/clear/", publicHandler.ClearCart)
		user.POST("/orders/", publicHandler.Checkout)
		user.GET("/orders/", publicHandler.ListOrders)
		user.GET("/orders/:id/", publicHandler.GetOrder)
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
