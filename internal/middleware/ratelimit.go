package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/par4d15e/blogbackendserver-sub001/internal/database"
	"github.com/par4d15e/blogbackendserver-sub001/internal/dto"
	"github.com/par4d15e/blogbackendserver-sub001/pkg/response"
)

// RateLimit 固定窗口限流, 按 IP+UA 哈希计数
// limit 次 / window 窗口, 超限返回业务错误
func RateLimit(limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		sum := sha256.Sum256([]byte(c.ClientIP() + ":" + c.GetHeader("User-Agent")))
		key := "rate_limit:" + hex.EncodeToString(sum[:])

		ctx := c.Request.Context()
		count, err := database.RedisDB.Incr(ctx, key).Result()
		if err != nil {
			// Redis 不可用时放行, 不因限流组件拖垮主流程
			logrus.WithError(err).Warn("限流计数失败")
			c.Next()
			return
		}

		if count == 1 {
			// 第一次访问, 设置过期时间
			database.RedisDB.Expire(ctx, key, window)
		}

		if count > int64(limit) {
			dto.ErrorResponse(c, response.NewBusinessError(
				response.WithErrorCode(response.Fail),
				response.WithErrorMessage(fmt.Sprintf("请求过于频繁, 请 %s 后再试", window)),
			))
			c.Abort()
			return
		}

		c.Next()
	}
}
