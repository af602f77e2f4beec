package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/BerniceZTT/leadgen_end/models"
	"github.com/BerniceZTT/leadgen_end/repository"
	"github.com/BerniceZTT/leadgen_end/utils"
)

// webhook回传的每条线索为7个固定位置的字段
const (
	payloadFieldCompanyName = 0
	payloadFieldWebsite     = 1
	payloadFieldDescription = 2
	payloadFieldContactName = 3
	payloadFieldEmail       = 4
	payloadFieldPhone       = 5
	payloadFieldNotes       = 6
)

// ErrNoValidLeads 载荷中不存在有效线索
var ErrNoValidLeads = utils.CreateBadRequestError("未找到有效的线索数据")

// ParsedLead webhook载荷解析出的候选线索
type ParsedLead struct {
	CompanyName string
	Website     string
	Description string
	ContactName string
	Email       string
	Phone       string
	Notes       string
}

// ParseLeadPayload 解析webhook回传的原始文本。
// 外部自动化的回传没有schema与版本号，按约定为JSON数组：
// 每条线索是7个字段的定长数组，或整个载荷就是单条线索的定长数组。
// 文本前后可能混入说明文字与换行，取第一个'['到最后一个']'之间的子串解析。
func ParseLeadPayload(raw string) ([]ParsedLead, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(raw, "\n", ""), "\r", ""))

	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start < 0 || end <= start {
		return nil, utils.CreateBadRequestError("载荷中未找到JSON数组")
	}

	var parsed []interface{}
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &parsed); err != nil {
		return nil, utils.CreateBadRequestError("解析JSON数组失败: " + err.Error())
	}

	// 单条扁平数组（首元素不是数组）按一条线索处理
	rows := make([][]interface{}, 0, len(parsed))
	if len(parsed) > 0 {
		if _, ok := parsed[0].([]interface{}); !ok {
			rows = append(rows, parsed)
		} else {
			for _, item := range parsed {
				if row, ok := item.([]interface{}); ok {
					rows = append(rows, row)
				}
			}
		}
	}

	leads := make([]ParsedLead, 0, len(rows))
	for i, row := range rows {
		lead := ParsedLead{
			CompanyName: positionalField(row, payloadFieldCompanyName),
			Website:     positionalField(row, payloadFieldWebsite),
			Description: positionalField(row, payloadFieldDescription),
			ContactName: positionalField(row, payloadFieldContactName),
			Email:       positionalField(row, payloadFieldEmail),
			Phone:       positionalField(row, payloadFieldPhone),
			Notes:       positionalField(row, payloadFieldNotes),
		}

		// 公司名为空的条目静默丢弃，仅记录告警
		if strings.TrimSpace(lead.CompanyName) == "" {
			utils.LogWarn(map[string]interface{}{
				"index": i,
			}, "线索缺少公司名称，已丢弃")
			continue
		}

		leads = append(leads, lead)
	}

	return leads, nil
}

// positionalField 取定长数组指定位置的字符串值，缺失或非字符串返回空串
func positionalField(row []interface{}, index int) string {
	if index >= len(row) || row[index] == nil {
		return ""
	}
	if s, ok := row[index].(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprint(row[index]))
}

// ImportResult 导入结果
type ImportResult struct {
	ImportID  string `json:"importId"`
	LeadCount int    `json:"leadCount"`
}

// ImportLeadsFromWebhook 执行webhook线索导入：
// 解析载荷 -> 创建导入批次 -> 批量落库线索（打上importId）。
// 批次创建或批量插入任一步失败则整体失败，批次记录的半成品不回滚。
func ImportLeadsFromWebhook(ctx context.Context, userID, name, source, payload string) (*ImportResult, error) {
	parsed, err := ParseLeadPayload(payload)
	if err != nil {
		return nil, err
	}

	if len(parsed) == 0 {
		return nil, ErrNoValidLeads
	}

	now := time.Now()
	if name == "" {
		name = "Webhook导入 " + now.Format("2006-01-02 15:04")
	}
	if source == "" {
		source = "webhook"
	}

	// 先创建批次记录
	importRecord := models.LeadImport{
		Name:      name,
		Source:    source,
		LeadCount: len(parsed),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	importID, err := repository.Table(repository.LeadImportsCollection).Insert(ctx, importRecord)
	if err != nil {
		utils.LogError(err, map[string]interface{}{
			"name": name,
		}, "创建导入批次失败")
		return nil, utils.NewAppError("创建导入批次失败", 500, err)
	}

	// 批量插入线索
	docs := make([]interface{}, len(parsed))
	for i, p := range parsed {
		docs[i] = models.Lead{
			CompanyName: p.CompanyName,
			Website:     p.Website,
			Description: p.Description,
			ContactName: p.ContactName,
			Email:       p.Email,
			Phone:       p.Phone,
			Notes:       p.Notes,
			Status:      models.LeadStatusNew,
			Priority:    models.LeadPriorityMedium,
			ImportID:    importID.Hex(),
			UserID:      userID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	}

	inserted, err := repository.Table(repository.LeadsCollection).InsertMany(ctx, docs)
	if err != nil {
		utils.LogError(err, map[string]interface{}{
			"importId": importID.Hex(),
			"count":    len(docs),
		}, "批量插入线索失败")
		return nil, utils.NewAppError("批量插入线索失败", 500, err)
	}

	utils.LogInfo(map[string]interface{}{
		"importId": importID.Hex(),
		"count":    inserted,
	}, "webhook线索导入完成")

	return &ImportResult{
		ImportID:  importID.Hex(),
		LeadCount: inserted,
	}, nil
}
