package routes

import (
	"github.com/BerniceZTT/leadgen_end/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterCallbackRoutes 注册回调路由。
// 回调来自外部webhook，不走认证；仅接受POST，其余方法由405兜底。
func RegisterCallbackRoutes(router *gin.Engine) {
	router.POST("/api/callbacks/vectorize", controllers.VectorizeCallback)
}
