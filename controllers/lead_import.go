package controllers

import (
	"net/http"
	"time"

	"github.com/BerniceZTT/leadgen_end/middleware"
	"github.com/BerniceZTT/leadgen_end/models"
	"github.com/BerniceZTT/leadgen_end/repository"
	"github.com/BerniceZTT/leadgen_end/service"
	"github.com/BerniceZTT/leadgen_end/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GetLeadImportList 获取导入批次列表。
// convertedCount 为每个批次按 status=converted 实时统计。
func GetLeadImportList(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var imports []models.LeadImport
	err = repository.Table(repository.LeadImportsCollection).
		Select(repository.GetContext(), ownerScope(user), "createdAt", true, &imports)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	leadsTable := repository.Table(repository.LeadsCollection)
	for i := range imports {
		count, err := leadsTable.Count(repository.GetContext(), repository.Filter{Eq: bson.M{
			"importId": imports[i].ID.Hex(),
			"status":   string(models.LeadStatusConverted),
		}})
		if err != nil {
			utils.LogError(err, map[string]interface{}{
				"importId": imports[i].ID.Hex(),
			}, "统计转化数失败")
			continue
		}
		imports[i].ConvertedCount = int(count)
	}

	utils.SuccessResponse(c, imports, "")
}

// CreateLeadImport 创建导入批次
func CreateLeadImport(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req models.LeadImportCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求参数: "+err.Error(), http.StatusBadRequest)
		return
	}

	now := time.Now()
	record := models.LeadImport{
		Name:          req.Name,
		Source:        req.Source,
		SourceDetails: req.SourceDetails,
		LeadCount:     req.LeadCount,
		UserID:        user.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	id, err := repository.Table(repository.LeadImportsCollection).Insert(repository.GetContext(), record)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	record.ID = id

	utils.SuccessResponse(c, record, "创建导入批次成功", http.StatusCreated)
}

// UpdateLeadImport 更新导入批次（局部补丁）
func UpdateLeadImport(c *gin.Context) {
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

	var req models.LeadImportUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求参数: "+err.Error(), http.StatusBadRequest)
		return
	}

	patch := req.ToColumnPatch()
	if len(patch) == 0 {
		utils.ErrorResponse(c, "没有需要更新的字段", http.StatusBadRequest)
		return
	}
	patch["updatedAt"] = time.Now()

	update := bson.M{}
	for k, v := range patch {
		update[k] = v
	}

	matched, err := repository.Table(repository.LeadImportsCollection).
		UpdateOne(repository.GetContext(), ownerScopeByID(user, id), update)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if matched == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("导入批次"))
		return
	}

	utils.SuccessResponse(c, nil, "更新导入批次成功")
}

// DeleteLeadImport 删除导入批次。
// 先解除线索与批次的关联，再删除批次记录；线索本身保留。
func DeleteLeadImport(c *gin.Context) {
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

	ctx := repository.GetContext()

	detachFilter := ownerScope(user)
	if detachFilter.Eq == nil {
		detachFilter.Eq = bson.M{}
	}
	detachFilter.Eq["importId"] = id.Hex()

	detached, err := repository.Table(repository.LeadsCollection).UpdateMany(ctx,
		detachFilter, bson.M{"importId": nil})
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	deleted, err := repository.Table(repository.LeadImportsCollection).
		DeleteOne(ctx, ownerScopeByID(user, id))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if deleted == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("导入批次"))
		return
	}

	utils.LogInfo(map[string]interface{}{
		"importId": id.Hex(),
		"detached": detached,
	}, "删除导入批次完成")

	utils.SuccessResponse(c, gin.H{"detachedLeads": detached}, "删除导入批次成功")
}

// WebhookImportLeads 接收外部自动化回传的线索载荷并导入
func WebhookImportLeads(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req models.WebhookImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求参数: "+err.Error(), http.StatusBadRequest)
		return
	}

	result, err := service.ImportLeadsFromWebhook(repository.GetContext(), user.ID, req.Name, req.Source, req.Payload)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	source := req.Source
	if source == "" {
		source = "webhook"
	}
	middleware.RecordLeadsImported(source, result.LeadCount)

	utils.SuccessResponse(c, result, "线索导入成功", http.StatusCreated)
}
