package routes

import (
	"github.com/BerniceZTT/leadgen_end/controllers"
	"github.com/BerniceZTT/leadgen_end/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterLeadImportRoutes 注册导入批次路由
func RegisterLeadImportRoutes(router *gin.Engine) {
	imports := router.Group("/api/lead-imports")
	imports.Use(middleware.AuthMiddleware())
	{
		imports.GET("", middleware.PermissionMiddleware("imports", "read"), controllers.GetLeadImportList)
		imports.POST("", middleware.PermissionMiddleware("imports", "create"), controllers.CreateLeadImport)
		imports.POST("/webhook", middleware.PermissionMiddleware("imports", "create"), controllers.WebhookImportLeads)
		imports.PUT("/:id", middleware.PermissionMiddleware("imports", "update"), controllers.UpdateLeadImport)
		imports.DELETE("/:id", middleware.PermissionMiddleware("imports", "delete"), controllers.DeleteLeadImport)
	}
}
