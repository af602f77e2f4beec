package routes

import (
	"github.com/BerniceZTT/leadgen_end/controllers"
	"github.com/BerniceZTT/leadgen_end/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterSocialPostRoutes 注册社媒帖子路由
func RegisterSocialPostRoutes(router *gin.Engine) {
	posts := router.Group("/api/social-posts")
	posts.Use(middleware.AuthMiddleware())
	{
		posts.GET("", middleware.PermissionMiddleware("socialPosts", "read"), controllers.GetSocialPostList)
		posts.POST("", middleware.PermissionMiddleware("socialPosts", "create"), controllers.CreateSocialPost)
		posts.GET("/:id", middleware.PermissionMiddleware("socialPosts", "read"), controllers.GetSocialPostDetail)
		posts.PATCH("/:id/field", middleware.PermissionMiddleware("socialPosts", "update"), controllers.UpdateSocialPostField)
		posts.PATCH("/:id/approval", middleware.PermissionMiddleware("socialPosts", "update"), controllers.ToggleSocialPostApproval)
		posts.DELETE("/:id", middleware.PermissionMiddleware("socialPosts", "delete"), controllers.DeleteSocialPost)
	}
}
