package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/par4d15e/blogbackendserver-sub001/internal/dto"
	"github.com/par4d15e/blogbackendserver-sub001/internal/model/user"
	"github.com/par4d15e/blogbackendserver-sub001/internal/pkg"
	"github.com/par4d15e/blogbackendserver-sub001/pkg/response"
)

// parseToken 从 cookie 或 Authorization header 中解析 token
func parseToken(c *gin.Context) (*pkg.Claims, error) {
	var tokenString string

	// 优先从 cookie 中获取 access_token
	tokenString, err := c.Cookie("access_token")
	if err != nil || tokenString == "" {
		// 如果 cookie 中没有，尝试从 Authorization header 获取（兼容旧方式）
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			return nil, fmt.Errorf("未提供认证令牌")
		}

		// 验证格式: Bearer <token>
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenString = authHeader[7:]
		} else {
			return nil, fmt.Errorf("认证格式错误")
		}
	}

	claims, err := pkg.ParseAccessToken(tokenString)
	if err != nil {
		return nil, fmt.Errorf("无效的认证令牌")
	}

	// 登出后的令牌在剩余有效期内被拉黑
	blacklisted, err := pkg.IsAccessTokenBlacklisted(claims.ID)
	if err != nil {
		logrus.WithError(err).Warn("检查令牌黑名单失败")
		return nil, fmt.Errorf("认证服务暂不可用")
	}
	if blacklisted {
		return nil, fmt.Errorf("认证令牌已失效")
	}

	return claims, nil
}

// setUserContext 将用户信息存入请求上下文
func setUserContext(c *gin.Context, claims *pkg.Claims) {
	c.Set("user_id", claims.UserID)
	c.Set("username", claims.Username)
	c.Set("email", claims.Email)
	c.Set("user_role", claims.Role)
	c.Set("token_jti", claims.ID)
}

// JWTAuth JWT 认证中间件（必需认证）
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := parseToken(c)
		if err != nil {
			dto.ErrorResponse(c, response.NewBusinessError(
				response.WithErrorCode(response.Unauthorized),
				response.WithErrorMessage(err.Error()),
			))
			c.Abort()
			return
		}

		setUserContext(c, claims)
		c.Next()
	}
}

// OptionalJWTAuth 可选的 JWT 认证中间件（不强制要求认证，但如果有token则解析）
func OptionalJWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := parseToken(c)
		if err == nil && claims != nil {
			setUserContext(c, claims)
		}
		// 无论是否有 token，都继续执行
		c.Next()
	}
}

// AdminOnly 管理员权限中间件, 需在 JWTAuth 之后使用
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("user_role")
		if !exists || role.(int) != int(user.RoleAdmin) {
			dto.ErrorResponse(c, response.NewBusinessError(
				response.WithErrorCode(response.Forbidden),
				response.WithErrorMessage("需要管理员权限"),
			))
			c.Abort()
			return
		}

		c.Next()
	}
}

// IsAdmin 当前请求是否来自管理员
func IsAdmin(c *gin.Context) bool {
	role, exists := c.Get("user_role")
	if !exists {
		return false
	}
	r, ok := role.(int)
	return ok && r == int(user.RoleAdmin)
}

// GetUserID 从上下文取当前用户ID, 未登录返回 0
func GetUserID(c *gin.Context) uint {
	if v, exists := c.Get("user_id"); exists {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
