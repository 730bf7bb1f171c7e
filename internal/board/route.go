package board

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/par4d15e/blogbackendserver-sub001/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup) {
	h := &BoardHandler{service: NewBoardService()}

	group := r.Group("/board")
	{
		group.GET("", h.GetBoard)
		group.GET("/:id/comments", h.ListComments)
		// 发留言限流, 防刷屏
		group.POST("/:id/comments", middleware.RateLimit(10, time.Minute), middleware.JWTAuth(), h.CreateComment)
		group.PUT("/comments/:comment_id", middleware.JWTAuth(), h.UpdateComment)
		group.DELETE("/comments/:comment_id", middleware.JWTAuth(), h.DeleteComment)
	}

	admin := r.Group("/admin/board", middleware.JWTAuth(), middleware.AdminOnly())
	{
		admin.PUT("/:id", h.UpdateBoard)
	}
}
