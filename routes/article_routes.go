package routes

import (
	"github.com/BerniceZTT/leadgen_end/controllers"
	"github.com/BerniceZTT/leadgen_end/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterArticleRoutes 注册文章路由
func RegisterArticleRoutes(router *gin.Engine) {
	articles := router.Group("/api/articles")
	articles.Use(middleware.AuthMiddleware())
	{
		articles.GET("", middleware.PermissionMiddleware("articles", "read"), controllers.GetArticleList)
		articles.POST("", middleware.PermissionMiddleware("articles", "create"), controllers.CreateArticle)
		articles.GET("/:id", middleware.PermissionMiddleware("articles", "read"), controllers.GetArticleDetail)
		articles.PATCH("/:id/field", middleware.PermissionMiddleware("articles", "update"), controllers.UpdateArticleField)
		articles.PATCH("/:id/approval", middleware.PermissionMiddleware("articles", "update"), controllers.ToggleArticleApproval)
		articles.POST("/:id/duplicate", middleware.PermissionMiddleware("articles", "create"), controllers.DuplicateArticle)
		articles.DELETE("/:id", middleware.PermissionMiddleware("articles", "delete"), controllers.DeleteArticle)
	}
}
