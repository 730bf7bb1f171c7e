package payment

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/par4d15e/blogbackendserver-sub001/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup) {
	h := NewPaymentHandler(NewPaymentService())

	payments := r.Group("/payments")
	{
		payments.POST("/intent", middleware.JWTAuth(), middleware.RateLimit(10, time.Minute), h.CreateIntent)
		// Stripe 回调靠签名验证, 不走 JWT
		payments.POST("/webhook", h.Webhook)
		payments.GET("/success/:intent_id", middleware.JWTAuth(), h.GetSuccessDetails)
		payments.GET("/records", middleware.JWTAuth(), h.ListRecords)
	}
}
