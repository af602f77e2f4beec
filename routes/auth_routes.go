package routes

import (
	"github.com/BerniceZTT/leadgen_end/controllers"
	"github.com/BerniceZTT/leadgen_end/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes 注册认证路由
func RegisterAuthRoutes(router *gin.Engine) {
	auth := router.Group("/api/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.GET("/validate", middleware.AuthMiddleware(), controllers.ValidateToken)
	}
}
