package subscriber

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/par4d15e/blogbackendserver-sub001/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup) {
	h := &SubscriberHandler{service: NewSubscriberService()}

	group := r.Group("/subscribers")
	{
		group.POST("", middleware.RateLimit(5, time.Minute), h.Subscribe)
		group.POST("/unsubscribe", h.Unsubscribe)
	}

	admin := r.Group("/admin/subscribers", middleware.JWTAuth(), middleware.AdminOnly())
	{
		admin.GET("", h.ListActive)
		admin.POST("/broadcast", h.Broadcast)
	}
}
