package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/BerniceZTT/leadgen_end/models"
	"github.com/BerniceZTT/leadgen_end/repository"
	"github.com/BerniceZTT/leadgen_end/tablequery"
	"github.com/BerniceZTT/leadgen_end/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// socialPostTable 社媒帖子表格定义
var socialPostTable = tablequery.Table[models.SocialPost]{
	Key: func(p models.SocialPost) string { return p.ID.Hex() },
	Columns: []tablequery.Column[models.SocialPost]{
		{Header: "内容", Field: "content", Kind: tablequery.ColumnKindText,
			Value: func(p models.SocialPost) interface{} { return p.Content }},
		{Header: "平台", Field: "platform", Kind: tablequery.ColumnKindSelect, Sortable: true,
			Options: []string{"twitter", "linkedin", "facebook", "instagram"},
			Value:   func(p models.SocialPost) interface{} { return p.Platform }},
		{Header: "状态", Field: "status", Kind: tablequery.ColumnKindSelect, Sortable: true,
			Options: []string{"Draft", "Ready", "Posted"},
			Value:   func(p models.SocialPost) interface{} { return string(p.Status) }},
		{Header: "计划时间", Field: "scheduledFor", Kind: tablequery.ColumnKindDate, Sortable: true,
			Value: func(p models.SocialPost) interface{} {
				if p.ScheduledFor == nil {
					return nil
				}
				return *p.ScheduledFor
			}},
		{Header: "创建时间", Field: "createdAt", Kind: tablequery.ColumnKindDate, Sortable: true,
			Value: func(p models.SocialPost) interface{} { return p.CreatedAt }},
	},
}

// GetSocialPostList 获取社媒帖子列表
func GetSocialPostList(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	sortField := c.Query("sortField")
	sortDir := c.DefaultQuery("sortDir", "asc")

	var posts []models.SocialPost
	err = repository.Table(repository.SocialPostsCollection).
		Select(repository.GetContext(), ownerScope(user), "createdAt", true, &posts)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	specs := make([]tablequery.FilterSpec, 0)
	for _, col := range socialPostTable.Columns {
		if v := c.Query(col.Field); v != "" {
			specs = append(specs, tablequery.FilterSpec{Field: col.Field, Value: v})
		}
	}

	state := tablequery.SortState{}
	if sortField != "" {
		state = tablequery.SortState{Field: sortField, Direction: tablequery.Direction(sortDir)}
	}

	result := socialPostTable.Apply(posts, specs, state, page, limit)
	utils.PaginatedResponse(c, result.Items, int64(result.Total), int64(result.Page), int64(result.Limit))
}

// CreateSocialPost 创建社媒帖子
func CreateSocialPost(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req models.SocialPostCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求参数: "+err.Error(), http.StatusBadRequest)
		return
	}

	now := time.Now()
	post := models.SocialPost{
		Content:      req.Content,
		Platform:     req.Platform,
		Status:       models.SocialPostStatusDraft,
		ScheduledFor: req.ScheduledFor,
		UserID:       user.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.Status != "" {
		post.Status = models.SocialPostStatus(req.Status)
	}

	id, err := repository.Table(repository.SocialPostsCollection).Insert(repository.GetContext(), post)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	post.ID = id

	utils.SuccessResponse(c, post, "创建帖子成功", http.StatusCreated)
}

// GetSocialPostDetail 获取帖子详情
func GetSocialPostDetail(c *gin.Context) {
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

	var post models.SocialPost
	if err := repository.Table(repository.SocialPostsCollection).
		SelectOne(repository.GetContext(), ownerScopeByID(user, id), &post); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, post, "")
}

// UpdateSocialPostField 单字段内联编辑
func UpdateSocialPostField(c *gin.Context) {
	updateContentField(c, repository.SocialPostsCollection, "帖子")
}

// ToggleSocialPostApproval 审核开关
func ToggleSocialPostApproval(c *gin.Context) {
	toggleContentApproval(c, repository.SocialPostsCollection, "帖子")
}

// DeleteSocialPost 删除帖子
func DeleteSocialPost(c *gin.Context) {
	deleteContentItem(c, repository.SocialPostsCollection, "帖子")
}
