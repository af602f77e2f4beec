package routes

import (
	"github.com/BerniceZTT/leadgen_end/controllers"
	"github.com/BerniceZTT/leadgen_end/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterFileRoutes 注册文件路由
func RegisterFileRoutes(router *gin.Engine) {
	files := router.Group("/api/files")
	files.Use(middleware.AuthMiddleware())
	{
		files.POST("/vectorize", middleware.PermissionMiddleware("files", "create"), controllers.VectorizeFile)
	}
}
