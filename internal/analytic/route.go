package analytic

import (
	"github.com/gin-gonic/gin"

	"github.com/par4d15e/blogbackendserver-sub001/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup) {
	h := NewAnalyticHandler(NewAnalyticService())

	admin := r.Group("/admin/analytics", middleware.JWTAuth(), middleware.AdminOnly())
	{
		admin.GET("/overview", h.Overview)
		admin.GET("/user-location", h.UserLocations)
		admin.GET("/user-statistics", h.UserStatistics)
		admin.GET("/blog-statistics", h.BlogStatistics)
		admin.GET("/top-ten-blog-performers", h.TopBlogPerformers)
		admin.GET("/tag-statistics", h.TagStatistics)
		admin.GET("/project-statistics", h.ProjectStatistics)
		admin.GET("/payment-statistics", h.PaymentStatistics)
		admin.GET("/top-ten-revenue-projects", h.TopRevenueProjects)
		admin.GET("/media-statistics", h.MediaStatistics)
		admin.GET("/growth-trends", h.GrowthTrends)
	}
}
