package friend

import (
	"github.com/gin-gonic/gin"

	"github.com/par4d15e/blogbackendserver-sub001/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup) {
	h := &FriendHandler{service: NewFriendService()}

	group := r.Group("/friends")
	{
		group.GET("", h.GetFriend)
		group.POST("/links", middleware.JWTAuth(), h.CreateLink)
		group.DELETE("/links/:id", middleware.JWTAuth(), h.DeleteLink)
	}

	admin := r.Group("/admin/friends", middleware.JWTAuth(), middleware.AdminOnly())
	{
		admin.PUT("/:id", h.UpdateFriend)
		admin.GET("/links", h.AdminListLinks)
		admin.PUT("/links/:id/type", h.UpdateLinkType)
	}
}
