package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LeadImport 线索导入批次
type LeadImport struct {
	ID            primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name"`
	Source        string             `json:"source" bson:"source"`
	SourceDetails map[string]string  `json:"sourceDetails,omitempty" bson:"sourceDetails,omitempty"`

	// leadCount为落库冗余值；convertedCount在查询时按status=converted实时统计
	LeadCount      int `json:"leadCount" bson:"leadCount"`
	ConvertedCount int `json:"convertedCount" bson:"-"`

	UserID    string    `json:"userId" bson:"userId"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// LeadImportCreateRequest 创建导入批次请求
type LeadImportCreateRequest struct {
	Name          string            `json:"name" binding:"required"`
	Source        string            `json:"source"`
	SourceDetails map[string]string `json:"sourceDetails"`
	LeadCount     int               `json:"leadCount"`
}

// LeadImportUpdateRequest 更新导入批次请求（camelCase局部补丁）
type LeadImportUpdateRequest struct {
	Name          *string           `json:"name"`
	Source        *string           `json:"source"`
	SourceDetails map[string]string `json:"sourceDetails"`
	LeadCount     *int              `json:"leadCount"`
}

// ToColumnPatch 将camelCase补丁映射为落库的列名
func (r *LeadImportUpdateRequest) ToColumnPatch() map[string]interface{} {
	patch := map[string]interface{}{}
	if r.Name != nil {
		patch["name"] = *r.Name
	}
	if r.Source != nil {
		patch["source"] = *r.Source
	}
	if r.SourceDetails != nil {
		patch["sourceDetails"] = r.SourceDetails
	}
	if r.LeadCount != nil {
		patch["leadCount"] = *r.LeadCount
	}
	return patch
}

// WebhookImportRequest 外部自动化回传的原始文本载荷
type WebhookImportRequest struct {
	Name    string `json:"name"`
	Source  string `json:"source"`
	Payload string `json:"payload" binding:"required"`
}
