package auth

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/par4d15e/blogbackendserver-sub001/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup) {
	h := &AuthHandler{service: NewAuthService()}

	group := r.Group("/auth")
	{
		// 验证码接口走 IP+UA 限流, 防刷邮件
		group.POST("/code", middleware.RateLimit(5, time.Minute), h.SendCode)
		group.POST("/register", h.Register)
		// OAuth 登录前先换取 state, 回跳地址随 state 存入 Redis
		group.POST("/prelogin", h.PreLogin)
		group.POST("/login", middleware.RateLimit(10, time.Minute), h.Login)
		group.POST("/refresh", h.Refresh)
		group.POST("/logout", middleware.JWTAuth(), h.Logout)
		group.POST("/password/reset", middleware.RateLimit(5, time.Minute), h.ResetPassword)
		group.PUT("/password", middleware.JWTAuth(), h.ChangePassword)
	}
}
