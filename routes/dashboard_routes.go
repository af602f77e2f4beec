package routes

import (
	"github.com/BerniceZTT/leadgen_end/controllers"
	"github.com/BerniceZTT/leadgen_end/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterDashboardStatsRoutes 注册看板统计路由
func RegisterDashboardStatsRoutes(router *gin.Engine) {
	dashboard := router.Group("/api/dashboard")
	dashboard.Use(middleware.AuthMiddleware())
	{
		dashboard.GET("/stats", middleware.PermissionMiddleware("dashboard", "read"), controllers.GetDashboardStats)
	}
}
