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

// articleTable 文章表格定义
var articleTable = tablequery.Table[models.Article]{
	Key: func(a models.Article) string { return a.ID.Hex() },
	Columns: []tablequery.Column[models.Article]{
		{Header: "标题", Field: "title", Kind: tablequery.ColumnKindText, Sortable: true,
			Value: func(a models.Article) interface{} { return a.Title }},
		{Header: "摘要", Field: "summary", Kind: tablequery.ColumnKindText,
			Value: func(a models.Article) interface{} { return a.Summary }},
		{Header: "状态", Field: "status", Kind: tablequery.ColumnKindSelect, Sortable: true,
			Options: []string{"Draft", "Ready", "Published"},
			Value:   func(a models.Article) interface{} { return string(a.Status) }},
		{Header: "创建时间", Field: "createdAt", Kind: tablequery.ColumnKindDate, Sortable: true,
			Value: func(a models.Article) interface{} { return a.CreatedAt }},
	},
}

// GetArticleList 获取文章列表
func GetArticleList(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	sortField := c.Query("sortField")
	sortDir := c.DefaultQuery("sortDir", "asc")

	var articles []models.Article
	err = repository.Table(repository.ArticlesCollection).
		Select(repository.GetContext(), ownerScope(user), "createdAt", true, &articles)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	specs := make([]tablequery.FilterSpec, 0)
	for _, col := range articleTable.Columns {
		if v := c.Query(col.Field); v != "" {
			specs = append(specs, tablequery.FilterSpec{Field: col.Field, Value: v})
		}
	}

	state := tablequery.SortState{}
	if sortField != "" {
		state = tablequery.SortState{Field: sortField, Direction: tablequery.Direction(sortDir)}
	}

	result := articleTable.Apply(articles, specs, state, page, limit)
	utils.PaginatedResponse(c, result.Items, int64(result.Total), int64(result.Page), int64(result.Limit))
}

// CreateArticle 创建文章
func CreateArticle(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req models.ArticleCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求参数: "+err.Error(), http.StatusBadRequest)
		return
	}

	now := time.Now()
	article := models.Article{
		Title:     req.Title,
		Content:   req.Content,
		Summary:   req.Summary,
		Status:    models.ArticleStatusDraft,
		UserID:    user.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Status != "" {
		article.Status = models.ArticleStatus(req.Status)
	}

	id, err := repository.Table(repository.ArticlesCollection).Insert(repository.GetContext(), article)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	article.ID = id

	utils.SuccessResponse(c, article, "创建文章成功", http.StatusCreated)
}

// GetArticleDetail 获取文章详情
func GetArticleDetail(c *gin.Context) {
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

	var article models.Article
	if err := repository.Table(repository.ArticlesCollection).
		SelectOne(repository.GetContext(), ownerScopeByID(user, id), &article); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, article, "")
}

// UpdateArticleField 单字段内联编辑
func UpdateArticleField(c *gin.Context) {
	updateContentField(c, repository.ArticlesCollection, "文章")
}

// ToggleArticleApproval 审核开关
func ToggleArticleApproval(c *gin.Context) {
	toggleContentApproval(c, repository.ArticlesCollection, "文章")
}

// DeleteArticle 删除文章
func DeleteArticle(c *gin.Context) {
	deleteContentItem(c, repository.ArticlesCollection, "文章")
}

// DuplicateArticle 复制文章。
// 副本获得新主键与新时间戳，标题追加副本标记，状态重置为Draft且未审核。
func DuplicateArticle(c *gin.Context) {
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

	var original models.Article
	if err := repository.Table(repository.ArticlesCollection).
		SelectOne(repository.GetContext(), ownerScopeByID(user, id), &original); err != nil {
		utils.HandleError(c, err)
		return
	}

	now := time.Now()
	duplicate := models.Article{
		Title:      original.Title + " (Copy)",
		Content:    original.Content,
		Summary:    original.Summary,
		Status:     models.ArticleStatusDraft,
		IsApproved: false,
		UserID:     user.ID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	newID, err := repository.Table(repository.ArticlesCollection).Insert(repository.GetContext(), duplicate)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	duplicate.ID = newID

	utils.LogInfo(map[string]interface{}{
		"sourceId": id.Hex(),
		"newId":    newID.Hex(),
	}, "复制文章成功")

	utils.SuccessResponse(c, duplicate, "复制文章成功", http.StatusCreated)
}
