package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/BerniceZTT/leadgen_end/config"
	"github.com/BerniceZTT/leadgen_end/models"
	"github.com/BerniceZTT/leadgen_end/repository"
	"github.com/BerniceZTT/leadgen_end/service"
	"github.com/BerniceZTT/leadgen_end/tablequery"
	"github.com/BerniceZTT/leadgen_end/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// newsletterTable 简报表格定义
var newsletterTable = tablequery.Table[models.Newsletter]{
	Key: func(n models.Newsletter) string { return n.ID.Hex() },
	Columns: []tablequery.Column[models.Newsletter]{
		{Header: "主题", Field: "subject", Kind: tablequery.ColumnKindText, Sortable: true,
			Value: func(n models.Newsletter) interface{} { return n.Subject }},
		{Header: "收件组", Field: "recipientGroup", Kind: tablequery.ColumnKindText,
			Value: func(n models.Newsletter) interface{} { return n.RecipientGroup }},
		{Header: "状态", Field: "status", Kind: tablequery.ColumnKindSelect, Sortable: true,
			Options: []string{"Draft", "Ready", "Sent"},
			Value:   func(n models.Newsletter) interface{} { return string(n.Status) }},
		{Header: "创建时间", Field: "createdAt", Kind: tablequery.ColumnKindDate, Sortable: true,
			Value: func(n models.Newsletter) interface{} { return n.CreatedAt }},
	},
}

// GetNewsletterList 获取简报列表
func GetNewsletterList(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	sortField := c.Query("sortField")
	sortDir := c.DefaultQuery("sortDir", "asc")

	var newsletters []models.Newsletter
	err = repository.Table(repository.NewslettersCollection).
		Select(repository.GetContext(), ownerScope(user), "createdAt", true, &newsletters)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	specs := make([]tablequery.FilterSpec, 0)
	for _, col := range newsletterTable.Columns {
		if v := c.Query(col.Field); v != "" {
			specs = append(specs, tablequery.FilterSpec{Field: col.Field, Value: v})
		}
	}

	state := tablequery.SortState{}
	if sortField != "" {
		state = tablequery.SortState{Field: sortField, Direction: tablequery.Direction(sortDir)}
	}

	result := newsletterTable.Apply(newsletters, specs, state, page, limit)
	utils.PaginatedResponse(c, result.Items, int64(result.Total), int64(result.Page), int64(result.Limit))
}

// CreateNewsletter 创建简报
func CreateNewsletter(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req models.NewsletterCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求参数: "+err.Error(), http.StatusBadRequest)
		return
	}

	now := time.Now()
	newsletter := models.Newsletter{
		Subject:        req.Subject,
		Content:        req.Content,
		RecipientGroup: req.RecipientGroup,
		Status:         models.NewsletterStatusDraft,
		UserID:         user.ID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if req.Status != "" {
		newsletter.Status = models.NewsletterStatus(req.Status)
	}

	id, err := repository.Table(repository.NewslettersCollection).Insert(repository.GetContext(), newsletter)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	newsletter.ID = id

	utils.SuccessResponse(c, newsletter, "创建简报成功", http.StatusCreated)
}

// GetNewsletterDetail 获取简报详情
func GetNewsletterDetail(c *gin.Context) {
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

	var newsletter models.Newsletter
	if err := repository.Table(repository.NewslettersCollection).
		SelectOne(repository.GetContext(), ownerScopeByID(user, id), &newsletter); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, newsletter, "")
}

// UpdateNewsletterField 单字段内联编辑
func UpdateNewsletterField(c *gin.Context) {
	updateContentField(c, repository.NewslettersCollection, "简报")
}

// ToggleNewsletterApproval 审核开关
func ToggleNewsletterApproval(c *gin.Context) {
	toggleContentApproval(c, repository.NewslettersCollection, "简报")
}

// DeleteNewsletter 删除简报
func DeleteNewsletter(c *gin.Context) {
	deleteContentItem(c, repository.NewslettersCollection, "简报")
}

// SendNewsletter 发送简报。
// 仅已审核通过且状态为Ready的简报可发送，发送成功后状态置为Sent。
func SendNewsletter(c *gin.Context) {
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

	var req struct {
		Recipients []string `json:"recipients" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求参数: "+err.Error(), http.StatusBadRequest)
		return
	}

	for _, r := range req.Recipients {
		if !utils.IsValidEmail(r) {
			utils.ErrorResponse(c, "收件人邮箱格式无效: "+r, http.StatusBadRequest)
			return
		}
	}

	var newsletter models.Newsletter
	if err := repository.Table(repository.NewslettersCollection).
		SelectOne(repository.GetContext(), ownerScopeByID(user, id), &newsletter); err != nil {
		utils.HandleError(c, err)
		return
	}

	sender := service.NewNewsletterSender(config.LoadConfig())
	if err := sender.Send(newsletter, req.Recipients); err != nil {
		utils.HandleError(c, err)
		return
	}

	// 发送成功后落库状态
	now := time.Now()
	_, err = repository.Table(repository.NewslettersCollection).UpdateOne(
		repository.GetContext(), ownerScopeByID(user, id), bson.M{
			"status":    string(models.NewsletterStatusSent),
			"sentAt":    now,
			"updatedAt": now,
		})
	if err != nil {
		utils.LogError(err, map[string]interface{}{
			"newsletterId": id.Hex(),
		}, "简报已发送但状态更新失败")
	}

	utils.SuccessResponse(c, gin.H{
		"recipients": len(req.Recipients),
		"sentAt":     now,
	}, "简报发送成功")
}
