package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/BerniceZTT/leadgen_end/models"
	"github.com/BerniceZTT/leadgen_end/repository"
	"github.com/BerniceZTT/leadgen_end/service"
	"github.com/BerniceZTT/leadgen_end/tablequery"
	"github.com/BerniceZTT/leadgen_end/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// leadTable 线索表格定义，列表接口的过滤与排序按列类型执行
var leadTable = tablequery.Table[models.Lead]{
	Key: func(l models.Lead) string { return l.ID.Hex() },
	Columns: []tablequery.Column[models.Lead]{
		{Header: "公司名称", Field: "companyName", Kind: tablequery.ColumnKindText, Sortable: true,
			Value: func(l models.Lead) interface{} { return l.CompanyName }},
		{Header: "网站", Field: "website", Kind: tablequery.ColumnKindText,
			Value: func(l models.Lead) interface{} { return l.Website }},
		{Header: "联系人", Field: "contactName", Kind: tablequery.ColumnKindText, Sortable: true,
			Value: func(l models.Lead) interface{} { return l.ContactName }},
		{Header: "邮箱", Field: "email", Kind: tablequery.ColumnKindText,
			Value: func(l models.Lead) interface{} { return l.Email }},
		{Header: "状态", Field: "status", Kind: tablequery.ColumnKindSelect, Sortable: true,
			Options: []string{"new", "contacted", "qualified", "converted", "lost"},
			Value:   func(l models.Lead) interface{} { return string(l.Status) }},
		{Header: "优先级", Field: "priority", Kind: tablequery.ColumnKindSelect, Sortable: true,
			Options: []string{"low", "medium", "high"},
			Value:   func(l models.Lead) interface{} { return string(l.Priority) }},
		{Header: "最近联系", Field: "lastContactedAt", Kind: tablequery.ColumnKindDate, Sortable: true,
			Value: func(l models.Lead) interface{} {
				if l.LastContactedAt == nil {
					return nil
				}
				return *l.LastContactedAt
			}},
		{Header: "创建时间", Field: "createdAt", Kind: tablequery.ColumnKindDate, Sortable: true,
			Value: func(l models.Lead) interface{} { return l.CreatedAt }},
	},
}

// fetchLeads 取回当前用户可见的全部线索，默认按创建时间倒序
func fetchLeads(c *gin.Context, user *utils.LoginUser) ([]models.Lead, error) {
	var leads []models.Lead
	err := repository.Table(repository.LeadsCollection).
		Select(repository.GetContext(), ownerScope(user), "createdAt", true, &leads)
	return leads, err
}

// GetLeadList 获取线索列表
func GetLeadList(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	sortField := c.Query("sortField")
	sortDir := c.DefaultQuery("sortDir", "asc")

	utils.LogInfo(map[string]interface{}{
		"user":      user.Username,
		"page":      page,
		"limit":     limit,
		"sortField": sortField,
	}, "获取线索列表")

	leads, err := fetchLeads(c, user)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	// 按列收集过滤条件
	specs := make([]tablequery.FilterSpec, 0)
	for _, col := range leadTable.Columns {
		if v := c.Query(col.Field); v != "" {
			specs = append(specs, tablequery.FilterSpec{Field: col.Field, Value: v})
		}
	}

	state := tablequery.SortState{}
	if sortField != "" {
		state = tablequery.SortState{Field: sortField, Direction: tablequery.Direction(sortDir)}
	}

	result := leadTable.Apply(leads, specs, state, page, limit)
	utils.PaginatedResponse(c, result.Items, int64(result.Total), int64(result.Page), int64(result.Limit))
}

// CreateLead 创建线索
func CreateLead(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req models.LeadCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求参数: "+err.Error(), http.StatusBadRequest)
		return
	}

	if req.Email != "" && !utils.IsValidEmail(req.Email) {
		utils.ErrorResponse(c, "邮箱格式无效", http.StatusBadRequest)
		return
	}
	if req.Status != "" && !models.ValidLeadStatus(req.Status) {
		utils.ErrorResponse(c, "无效的线索状态: "+req.Status, http.StatusBadRequest)
		return
	}
	if req.Priority != "" && !models.ValidLeadPriority(req.Priority) {
		utils.ErrorResponse(c, "无效的优先级: "+req.Priority, http.StatusBadRequest)
		return
	}

	now := time.Now()
	lead := models.Lead{
		CompanyName:  req.CompanyName,
		Address:      req.Address,
		Website:      req.Website,
		Description:  req.Description,
		ContactName:  req.ContactName,
		ContactTitle: req.ContactTitle,
		Email:        req.Email,
		Phone:        req.Phone,
		Status:       models.LeadStatusNew,
		Priority:     models.LeadPriorityMedium,
		Notes:        req.Notes,
		ImportID:     req.ImportID,
		HistoryID:    req.HistoryID,
		UserID:       user.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.Status != "" {
		lead.Status = models.LeadStatus(req.Status)
	}
	if req.Priority != "" {
		lead.Priority = models.LeadPriority(req.Priority)
	}

	id, err := repository.Table(repository.LeadsCollection).Insert(repository.GetContext(), lead)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	lead.ID = id

	utils.LogInfo(map[string]interface{}{
		"id":          id.Hex(),
		"companyName": lead.CompanyName,
	}, "创建线索成功")

	utils.SuccessResponse(c, lead, "创建线索成功", http.StatusCreated)
}

// GetLeadDetail 获取线索详情
func GetLeadDetail(c *gin.Context) {
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

	var lead models.Lead
	if err := repository.Table(repository.LeadsCollection).
		SelectOne(repository.GetContext(), ownerScopeByID(user, id), &lead); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, lead, "")
}

// UpdateLeadField 单字段内联编辑。
// 提交即保存，保存成功后才认为字段值已变更。
func UpdateLeadField(c *gin.Context) {
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

	if !models.LeadFieldEditable(req.Field) {
		utils.ErrorResponse(c, "字段不允许编辑: "+req.Field, http.StatusBadRequest)
		return
	}

	value, ok := req.Value.(string)
	if !ok {
		utils.ErrorResponse(c, "字段值必须为字符串", http.StatusBadRequest)
		return
	}

	// select类型的列按列定义的取值集合校验
	variant := service.FieldVariantText
	var options []string
	for _, col := range leadTable.Columns {
		if col.Field == req.Field && col.Kind == tablequery.ColumnKindSelect {
			variant = service.FieldVariantSelect
			options = col.Options
		}
	}

	utils.LogInfo(map[string]interface{}{
		"id":    id.Hex(),
		"field": req.Field,
		"user":  user.Username,
	}, "更新线索字段")

	// 编辑会话提交即保存，保存回调成功后字段值才生效
	session := service.NewEditField(variant, "", true, func(v string) error {
		matched, err := repository.Table(repository.LeadsCollection).UpdateOne(
			repository.GetContext(), ownerScopeByID(user, id),
			bson.M{req.Field: v, "updatedAt": time.Now()})
		if err != nil {
			return err
		}
		if matched == 0 {
			return utils.CreateNotFoundError("线索")
		}
		return nil
	}).WithOptions(options)

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

// UpdateLeadStatus 状态流转
func UpdateLeadStatus(c *gin.Context) {
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

	var req models.LeadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求参数: "+err.Error(), http.StatusBadRequest)
		return
	}

	if !models.ValidLeadStatus(req.Status) {
		utils.ErrorResponse(c, "无效的线索状态: "+req.Status, http.StatusBadRequest)
		return
	}

	now := time.Now()
	patch := bson.M{"status": req.Status, "updatedAt": now}
	// 进入contacted时同步更新最近联系时间
	if models.LeadStatus(req.Status) == models.LeadStatusContacted {
		patch["lastContactedAt"] = now
	}

	matched, err := repository.Table(repository.LeadsCollection).UpdateOne(
		repository.GetContext(), ownerScopeByID(user, id), patch)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if matched == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("线索"))
		return
	}

	utils.SuccessResponse(c, gin.H{"status": req.Status}, "状态更新成功")
}

// DeleteLead 删除单条线索，只能删除自己数据范围内的记录
func DeleteLead(c *gin.Context) {
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

	deleted, err := repository.Table(repository.LeadsCollection).
		DeleteOne(repository.GetContext(), ownerScopeByID(user, id))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if deleted == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("线索"))
		return
	}

	utils.SuccessResponse(c, nil, "删除线索成功")
}

// BulkDeleteLeads 批量删除，ids来自表格行选择。
// 删除范围叠加数据范围条件，选中他人记录不会被删除。
func BulkDeleteLeads(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req models.LeadBulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求参数: "+err.Error(), http.StatusBadRequest)
		return
	}

	ids := make([]interface{}, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			utils.ErrorResponse(c, "无效的ID格式: "+raw, http.StatusBadRequest)
			return
		}
		ids = append(ids, id)
	}

	filter := ownerScope(user)
	filter.In = map[string][]interface{}{"_id": ids}

	deleted, err := repository.Table(repository.LeadsCollection).DeleteMany(repository.GetContext(), filter)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.LogInfo(map[string]interface{}{
		"requested": len(ids),
		"deleted":   deleted,
	}, "批量删除线索完成")

	utils.SuccessResponse(c, gin.H{"deleted": deleted}, "批量删除成功")
}

// exportLeads 解析导出范围：携带ids参数时只导出选中行，否则导出可见全集
func exportLeads(c *gin.Context, user *utils.LoginUser) ([]models.Lead, error) {
	leads, err := fetchLeads(c, user)
	if err != nil {
		return nil, err
	}

	idsParam := c.Query("ids")
	if idsParam == "" {
		return leads, nil
	}

	selection := tablequery.NewSelection(leadTable.Key)
	for _, id := range strings.Split(idsParam, ",") {
		if id != "" {
			selection.AddKey(id)
		}
	}
	return selection.Selected(leads), nil
}

// ExportLeadsCSV 导出线索为CSV
func ExportLeadsCSV(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	leads, err := exportLeads(c, user)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	fileName := "leads-" + time.Now().Format("20060102-150405") + ".csv"
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)

	if err := service.ExportLeadsCSV(c.Writer, leads); err != nil {
		utils.LogError(err, map[string]interface{}{"count": len(leads)}, "CSV导出失败")
	}
}

// ExportLeadsWorkbook 导出线索为电子表格
func ExportLeadsWorkbook(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	leads, err := exportLeads(c, user)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	fileName := "leads-" + time.Now().Format("20060102-150405") + ".xls"
	c.Header("Content-Type", "application/vnd.ms-excel")
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)

	if err := service.ExportLeadsWorkbook(c.Writer, leads); err != nil {
		utils.LogError(err, map[string]interface{}{"count": len(leads)}, "电子表格导出失败")
	}
}
