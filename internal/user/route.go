package user

import (
	"github.com/gin-gonic/gin"

	"github.com/par4d15e/blogbackendserver-sub001/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup) {
	h := &UserHandler{service: NewUserService()}

	r.GET("/users/:id", h.GetPublicProfile)

	me := r.Group("/users/me", middleware.JWTAuth())
	{
		me.GET("", h.GetProfile)
		me.PUT("", h.UpdateProfile)
		me.DELETE("", h.DeleteAccount)
	}

	admin := r.Group("/admin/users", middleware.JWTAuth(), middleware.AdminOnly())
	{
		admin.GET("", h.AdminListUsers)
		admin.PUT("/:id/role", h.AdminSetRole)
		admin.PUT("/:id/status", h.AdminSetActive)
		admin.DELETE("/:id", h.AdminDeleteUser)
	}
}
