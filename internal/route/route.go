// Package route 汇总各业务包的路由注册
package route

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/par4d15e/blogbackendserver-sub001/config"
	"github.com/par4d15e/blogbackendserver-sub001/internal/analytic"
	"github.com/par4d15e/blogbackendserver-sub001/internal/auth"
	"github.com/par4d15e/blogbackendserver-sub001/internal/blog"
	"github.com/par4d15e/blogbackendserver-sub001/internal/board"
	"github.com/par4d15e/blogbackendserver-sub001/internal/friend"
	"github.com/par4d15e/blogbackendserver-sub001/internal/media"
	"github.com/par4d15e/blogbackendserver-sub001/internal/payment"
	"github.com/par4d15e/blogbackendserver-sub001/internal/project"
	"github.com/par4d15e/blogbackendserver-sub001/internal/section"
	"github.com/par4d15e/blogbackendserver-sub001/internal/seo"
	"github.com/par4d15e/blogbackendserver-sub001/internal/subscriber"
	"github.com/par4d15e/blogbackendserver-sub001/internal/tag"
	"github.com/par4d15e/blogbackendserver-sub001/internal/user"
)

func initRoute(r *gin.Engine) {
	// Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		auth.RegisterRoutes(apiV1)
		user.RegisterRoutes(apiV1)
		blog.RegisterRoutes(apiV1)
		board.RegisterRoutes(apiV1)
		friend.RegisterRoutes(apiV1)
		project.RegisterRoutes(apiV1)
		section.RegisterRoutes(apiV1)
		seo.RegisterRoutes(apiV1)
		tag.RegisterRoutes(apiV1)
		media.RegisterRoutes(apiV1)
		payment.RegisterRoutes(apiV1)
		subscriber.RegisterRoutes(apiV1)
		analytic.RegisterRoutes(apiV1)
	}
}

func SetupRouter() *gin.Engine {
	if config.Conf.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	allowedOrigins := []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}
	if origin := config.Conf.App.FrontendURL; origin != "" {
		allowedOrigins = append(allowedOrigins, origin)
	}

	// 设置跨域请求
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}))

	initRoute(r)

	return r
}
