package project

import (
	"github.com/gin-gonic/gin"

	"github.com/par4d15e/blogbackendserver-sub001/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup) {
	h := NewProjectHandler(NewProjectService())

	public := r.Group("/projects")
	{
		public.GET("", middleware.OptionalJWTAuth(), h.List)
		public.GET("/:slug", middleware.OptionalJWTAuth(), h.GetDetail)
	}

	admin := r.Group("/admin/projects", middleware.JWTAuth(), middleware.AdminOnly())
	{
		admin.POST("", h.Create)
		admin.PUT("/:id", h.Update)
		admin.DELETE("/:id", h.Delete)
		admin.PUT("/:id/publish", h.SetPublished)
	}
}
