package routes

import (
	"github.com/BerniceZTT/leadgen_end/controllers"
	"github.com/BerniceZTT/leadgen_end/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterNewsletterRoutes 注册简报路由
func RegisterNewsletterRoutes(router *gin.Engine) {
	newsletters := router.Group("/api/newsletters")
	newsletters.Use(middleware.AuthMiddleware())
	{
		newsletters.GET("", middleware.PermissionMiddleware("newsletters", "read"), controllers.GetNewsletterList)
		newsletters.POST("", middleware.PermissionMiddleware("newsletters", "create"), controllers.CreateNewsletter)
		newsletters.GET("/:id", middleware.PermissionMiddleware("newsletters", "read"), controllers.GetNewsletterDetail)
		newsletters.PATCH("/:id/field", middleware.PermissionMiddleware("newsletters", "update"), controllers.UpdateNewsletterField)
		newsletters.PATCH("/:id/approval", middleware.PermissionMiddleware("newsletters", "update"), controllers.ToggleNewsletterApproval)
		newsletters.POST("/:id/send", middleware.PermissionMiddleware("newsletters", "update"), controllers.SendNewsletter)
		newsletters.DELETE("/:id", middleware.PermissionMiddleware("newsletters", "delete"), controllers.DeleteNewsletter)
	}
}
