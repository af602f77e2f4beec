package controllers

import (
	"net/http"

	"github.com/BerniceZTT/leadgen_end/models"
	"github.com/BerniceZTT/leadgen_end/repository"
	"github.com/BerniceZTT/leadgen_end/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// GetDashboardStats 汇总看板统计：线索分状态计数、导入批次、内容审核进度
func GetDashboardStats(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	ctx := repository.GetContext()

	userScope := func() bson.M {
		if models.UserRole(user.Role) == models.UserRoleSUPER_ADMIN {
			return bson.M{}
		}
		return bson.M{"userId": user.ID}
	}

	// 线索分状态计数
	leadStatuses := []models.LeadStatus{
		models.LeadStatusNew,
		models.LeadStatusContacted,
		models.LeadStatusQualified,
		models.LeadStatusConverted,
		models.LeadStatusLost,
	}
	leadStats := gin.H{}
	leadsTable := repository.Table(repository.LeadsCollection)
	totalLeads := int64(0)
	for _, status := range leadStatuses {
		scope := userScope()
		scope["status"] = string(status)
		count, err := leadsTable.Count(ctx, repository.Filter{Eq: scope})
		if err != nil {
			utils.HandleError(c, err)
			return
		}
		leadStats[string(status)] = count
		totalLeads += count
	}

	// 导入批次总数
	importCount, err := repository.Table(repository.LeadImportsCollection).
		Count(ctx, repository.Filter{Eq: userScope()})
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	// 内容审核进度
	contentStats := gin.H{}
	for label, collection := range map[string]string{
		"articles":    repository.ArticlesCollection,
		"newsletters": repository.NewslettersCollection,
		"socialPosts": repository.SocialPostsCollection,
	} {
		table := repository.Table(collection)
		total, err := table.Count(ctx, repository.Filter{Eq: userScope()})
		if err != nil {
			utils.HandleError(c, err)
			return
		}
		approvedScope := userScope()
		approvedScope["isApproved"] = true
		approved, err := table.Count(ctx, repository.Filter{Eq: approvedScope})
		if err != nil {
			utils.HandleError(c, err)
			return
		}
		contentStats[label] = gin.H{"total": total, "approved": approved}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"leads": gin.H{
				"total":    totalLeads,
				"byStatus": leadStats,
			},
			"imports": gin.H{
				"total": importCount,
			},
			"content": contentStats,
		},
	})
}
