package media

import (
	"github.com/gin-gonic/gin"

	"github.com/par4d15e/blogbackendserver-sub001/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup) {
	h := NewMediaHandler(NewMediaService())

	authed := r.Group("/media", middleware.JWTAuth())
	{
		authed.POST("", h.Upload)
		authed.GET("/:uuid/presign", h.Presign)
	}

	admin := r.Group("/admin/media", middleware.JWTAuth(), middleware.AdminOnly())
	{
		admin.GET("", h.List)
		admin.DELETE("/:id", h.Delete)
	}
}
