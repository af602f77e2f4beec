package routes

import (
	"github.com/BerniceZTT/leadgen_end/controllers"
	"github.com/BerniceZTT/leadgen_end/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterLeadRoutes 注册线索路由
func RegisterLeadRoutes(router *gin.Engine) {
	leads := router.Group("/api/leads")
	leads.Use(middleware.AuthMiddleware())
	{
		leads.GET("", middleware.PermissionMiddleware("leads", "read"), controllers.GetLeadList)
		leads.POST("", middleware.PermissionMiddleware("leads", "create"), controllers.CreateLead)
		leads.GET("/export/csv", middleware.PermissionMiddleware("leads", "export"), controllers.ExportLeadsCSV)
		leads.GET("/export/xlsx", middleware.PermissionMiddleware("leads", "export"), controllers.ExportLeadsWorkbook)
		leads.DELETE("/bulk", middleware.PermissionMiddleware("leads", "delete"), controllers.BulkDeleteLeads)
		leads.GET("/:id", middleware.PermissionMiddleware("leads", "read"), controllers.GetLeadDetail)
		leads.PATCH("/:id/field", middleware.PermissionMiddleware("leads", "update"), controllers.UpdateLeadField)
		leads.PATCH("/:id/status", middleware.PermissionMiddleware("leads", "update"), controllers.UpdateLeadStatus)
		leads.DELETE("/:id", middleware.PermissionMiddleware("leads", "delete"), controllers.DeleteLead)
	}
}
