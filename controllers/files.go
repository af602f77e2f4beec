package controllers

import (
	"net/http"

	"github.com/BerniceZTT/leadgen_end/config"
	"github.com/BerniceZTT/leadgen_end/middleware"
	"github.com/BerniceZTT/leadgen_end/service"
	"github.com/BerniceZTT/leadgen_end/utils"

	"github.com/gin-gonic/gin"
)

// VectorizeFile 接收上传文件并转发到向量化webhook。
// 向量化是长耗时操作，出站请求在客户端内部有超时上限。
func VectorizeFile(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.ErrorResponse(c, "未找到上传文件: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.ErrorResponse(c, "打开上传文件失败: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	utils.LogInfo(map[string]interface{}{
		"fileName": fileHeader.Filename,
		"size":     fileHeader.Size,
		"user":     user.Username,
	}, "提交文件向量化")

	client := service.NewVectorizeClient(config.LoadConfig().VectorizeWebhookURL)
	result, err := client.UploadFile(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		middleware.RecordWebhookError("vectorize")
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, result, "文件已提交向量化")
}
