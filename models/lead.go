package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LeadStatus 线索生命周期状态
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusConverted LeadStatus = "converted"
	LeadStatusLost      LeadStatus = "lost"
)

// ValidLeadStatus 判断状态是否合法
func ValidLeadStatus(s string) bool {
	switch LeadStatus(s) {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusConverted, LeadStatusLost:
		return true
	}
	return false
}

// LeadPriority 线索优先级
type LeadPriority string

const (
	LeadPriorityLow    LeadPriority = "low"
	LeadPriorityMedium LeadPriority = "medium"
	LeadPriorityHigh   LeadPriority = "high"
)

// ValidLeadPriority 判断优先级是否合法
func ValidLeadPriority(p string) bool {
	switch LeadPriority(p) {
	case LeadPriorityLow, LeadPriorityMedium, LeadPriorityHigh:
		return true
	}
	return false
}

// Lead 线索模型
type Lead struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	CompanyName string             `json:"companyName" bson:"companyName"`
	Address     string             `json:"address" bson:"address"`
	Website     string             `json:"website" bson:"website"`
	Description string             `json:"description" bson:"description"`

	// 决策人联系信息
	ContactName  string `json:"contactName" bson:"contactName"`
	ContactTitle string `json:"contactTitle" bson:"contactTitle"`
	Email        string `json:"email" bson:"email"`
	Phone        string `json:"phone" bson:"phone"`

	Status   LeadStatus   `json:"status" bson:"status"`
	Priority LeadPriority `json:"priority" bson:"priority"`
	Notes    string       `json:"notes" bson:"notes"`

	LastContactedAt *time.Time `json:"lastContactedAt,omitempty" bson:"lastContactedAt,omitempty"`

	// 批次归属，批量导入时写入；删除导入批次只解除关联不删线索
	ImportID  string `json:"importId,omitempty" bson:"importId,omitempty"`
	HistoryID string `json:"historyId,omitempty" bson:"historyId,omitempty"`

	UserID    string    `json:"userId" bson:"userId"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// LeadCreateRequest 创建线索请求
type LeadCreateRequest struct {
	CompanyName  string `json:"companyName" binding:"required"`
	Address      string `json:"address"`
	Website      string `json:"website"`
	Description  string `json:"description"`
	ContactName  string `json:"contactName"`
	ContactTitle string `json:"contactTitle"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Status       string `json:"status"`
	Priority     string `json:"priority"`
	Notes        string `json:"notes"`
	ImportID     string `json:"importId"`
	HistoryID    string `json:"historyId"`
}

// LeadBulkDeleteRequest 批量删除请求，ids来自表格当前的行选择状态
type LeadBulkDeleteRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

// LeadStatusRequest 状态流转请求
type LeadStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// leadEditableFields 允许内联编辑的线索字段
var leadEditableFields = map[string]bool{
	"companyName":  true,
	"address":      true,
	"website":      true,
	"description":  true,
	"contactName":  true,
	"contactTitle": true,
	"email":        true,
	"phone":        true,
	"status":       true,
	"priority":     true,
	"notes":        true,
}

// LeadFieldEditable 判断字段是否允许内联编辑
func LeadFieldEditable(field string) bool {
	return leadEditableFields[field]
}
