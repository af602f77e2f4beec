package controllers

import (
	"net/http"
	"time"

	"github.com/BerniceZTT/leadgen_end/models"
	"github.com/BerniceZTT/leadgen_end/repository"
	"github.com/BerniceZTT/leadgen_end/service"
	"github.com/BerniceZTT/leadgen_end/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// updateContentField 内容类实体的单字段内联编辑，三类实体共用
func updateContentField(c *gin.Context, collection string, label string) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, "无效的ID格式", http.StatusBadRequest)
		return
	}

	var req models.FieldUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求参数: "+err.Error(), http.StatusBadRequest)
		return
	}

	if !models.ContentFieldEditable(collection, req.Field) {
		utils.ErrorResponse(c, "字段不允许编辑: "+req.Field, http.StatusBadRequest)
		return
	}

	value, ok := req.Value.(string)
	if !ok {
		utils.ErrorResponse(c, "字段值必须为字符串", http.StatusBadRequest)
		return
	}

	utils.LogInfo(map[string]interface{}{
		"collection": collection,
		"id":         id.Hex(),
		"field":      req.Field,
		"user":       user.Username,
	}, "更新"+label+"字段")

	// 正文字段按多行文本处理，其余按单行文本
	variant := service.FieldVariantText
	if req.Field == "content" {
		variant = service.FieldVariantTextarea
	}

	session := service.NewEditField(variant, "", true, func(v string) error {
		matched, err := repository.Table(collection).UpdateOne(
			repository.GetContext(), ownerScopeByID(user, id),
			bson.M{req.Field: v, "updatedAt": time.Now()})
		if err != nil {
			return err
		}
		if matched == 0 {
			return utils.CreateNotFoundError(label)
		}
		return nil
	})

	session.BeginEdit()
	if err := session.SetDraft(value); err != nil {
		utils.ErrorResponse(c, err.Error(), http.StatusBadRequest)
		return
	}
	if err := session.Blur(); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"field": req.Field, "value": session.Value()}, "字段更新成功")
}

// toggleContentApproval 审核开关。
// 请求携带客户端当前看到的值，服务端写入其取反，开关即保存。
func toggleContentApproval(c *gin.Context, collection string, label string) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, "无效的ID格式", http.StatusBadRequest)
		return
	}

	var req models.ApprovalToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求参数: "+err.Error(), http.StatusBadRequest)
		return
	}

	newValue := !req.IsApproved

	matched, err := repository.Table(collection).UpdateOne(
		repository.GetContext(), ownerScopeByID(user, id),
		bson.M{"isApproved": newValue, "updatedAt": time.Now()})
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if matched == 0 {
		utils.HandleError(c, utils.CreateNotFoundError(label))
		return
	}

	utils.SuccessResponse(c, gin.H{"isApproved": newValue}, "审核状态已更新")
}

// deleteContentItem 删除内容类实体，只能删除自己数据范围内的记录
func deleteContentItem(c *gin.Context, collection string, label string) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, "无效的ID格式", http.StatusBadRequest)
		return
	}

	deleted, err := repository.Table(collection).
		DeleteOne(repository.GetContext(), ownerScopeByID(user, id))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if deleted == 0 {
		utils.HandleError(c, utils.CreateNotFoundError(label))
		return
	}

	utils.SuccessResponse(c, nil, "删除"+label+"成功")
}
