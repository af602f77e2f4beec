package controllers

import (
	"net/http"

	"github.com/BerniceZTT/leadgen_end/utils"

	"github.com/gin-gonic/gin"
)

// VectorizeCallbackRequest 向量化完成后的回调载荷。
// 键名大小写与回调方的约定保持一致，绑定时不区分大小写。
type VectorizeCallbackRequest struct {
	Status    string `json:"status"`
	SheetID   string `json:"SheetID"`
	SheetLink string `json:"SheetLink"`
	RequestID string `json:"requestId"`
}

// VectorizeCallback 接收向量化webhook的完成回调并原样确认。
// 回调方只关心收到与否，载荷解析失败按服务端错误返回。
func VectorizeCallback(c *gin.Context) {
	var req VectorizeCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, map[string]interface{}{
			"path": c.Request.URL.Path,
		}, "解析向量化回调失败")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "解析回调载荷失败",
		})
		return
	}

	utils.LogInfo(map[string]interface{}{
		"requestId": req.RequestID,
		"status":    req.Status,
		"sheetId":   req.SheetID,
	}, "收到向量化回调")

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"status":    req.Status,
		"SheetID":   req.SheetID,
		"SheetLink": req.SheetLink,
		"requestId": req.RequestID,
	})
}
