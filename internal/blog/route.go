package blog

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/par4d15e/blogbackendserver-sub001/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup) {
	h := &BlogHandler{service: NewBlogService()}

	public := r.Group("/blogs")
	{
		public.GET("/section/:section_id", h.ListBySection)
		public.GET("/tag/:slug", h.ListByTag)
		public.GET("/archived", h.ListArchived)
		public.GET("/popular", h.ListPopular)
		public.GET("/saved", middleware.JWTAuth(), h.ListSaved)
		public.GET("/:slug", middleware.OptionalJWTAuth(), h.GetDetail)
		public.GET("/:slug/seo", h.GetSeo)
		public.GET("/:slug/navigation", h.GetNavigation)
	}

	// 评论和互动按博客ID寻址, 与 slug 路由分组隔离
	interact := r.Group("/blogs")
	{
		interact.GET("/id/:id/comments", h.ListComments)
		// 发评论限流, 防刷屏
		interact.POST("/id/:id/comments", middleware.RateLimit(10, time.Minute), middleware.JWTAuth(), h.CreateComment)
		interact.PUT("/comments/:comment_id", middleware.JWTAuth(), h.UpdateComment)
		interact.DELETE("/comments/:comment_id", middleware.JWTAuth(), h.DeleteComment)
		interact.POST("/id/:id/save", middleware.JWTAuth(), h.ToggleSave)
		interact.POST("/id/:id/like", h.Like)
	}

	admin := r.Group("/admin/blogs", middleware.JWTAuth(), middleware.AdminOnly())
	{
		admin.POST("", h.Create)
		admin.PUT("/:id", h.Update)
		admin.DELETE("/:id", h.Delete)
		admin.PUT("/:id/status", h.UpdateStatus)
	}
}
