package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ArticleStatus 文章状态
type ArticleStatus string

const (
	ArticleStatusDraft     ArticleStatus = "Draft"
	ArticleStatusReady     ArticleStatus = "Ready"
	ArticleStatusPublished ArticleStatus = "Published"
)

// NewsletterStatus 邮件简报状态
type NewsletterStatus string

const (
	NewsletterStatusDraft NewsletterStatus = "Draft"
	NewsletterStatusReady NewsletterStatus = "Ready"
	NewsletterStatusSent  NewsletterStatus = "Sent"
)

// SocialPostStatus 社媒帖子状态
type SocialPostStatus string

const (
	SocialPostStatusDraft  SocialPostStatus = "Draft"
	SocialPostStatusReady  SocialPostStatus = "Ready"
	SocialPostStatusPosted SocialPostStatus = "Posted"
)

// Article 营销文章
type Article struct {
	ID         primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Title      string             `json:"title" bson:"title"`
	Content    string             `json:"content" bson:"content"`
	Summary    string             `json:"summary" bson:"summary"`
	Status     ArticleStatus      `json:"status" bson:"status"`
	IsApproved bool               `json:"isApproved" bson:"isApproved"`
	UserID     string             `json:"userId" bson:"userId"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Newsletter 邮件简报
type Newsletter struct {
	ID             primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Subject        string             `json:"subject" bson:"subject"`
	Content        string             `json:"content" bson:"content"`
	RecipientGroup string             `json:"recipientGroup" bson:"recipientGroup"`
	Status         NewsletterStatus   `json:"status" bson:"status"`
	IsApproved     bool               `json:"isApproved" bson:"isApproved"`
	SentAt         *time.Time         `json:"sentAt,omitempty" bson:"sentAt,omitempty"`
	UserID         string             `json:"userId" bson:"userId"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// SocialPost 社媒帖子
type SocialPost struct {
	ID           primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Content      string             `json:"content" bson:"content"`
	Platform     string             `json:"platform" bson:"platform"`
	Status       SocialPostStatus   `json:"status" bson:"status"`
	IsApproved   bool               `json:"isApproved" bson:"isApproved"`
	ScheduledFor *time.Time         `json:"scheduledFor,omitempty" bson:"scheduledFor,omitempty"`
	UserID       string             `json:"userId" bson:"userId"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ArticleCreateRequest 创建文章请求
type ArticleCreateRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
	Summary string `json:"summary"`
	Status  string `json:"status"`
}

// NewsletterCreateRequest 创建简报请求
type NewsletterCreateRequest struct {
	Subject        string `json:"subject" binding:"required"`
	Content        string `json:"content"`
	RecipientGroup string `json:"recipientGroup"`
	Status         string `json:"status"`
}

// SocialPostCreateRequest 创建帖子请求
type SocialPostCreateRequest struct {
	Content      string     `json:"content" binding:"required"`
	Platform     string     `json:"platform" binding:"required"`
	Status       string     `json:"status"`
	ScheduledFor *time.Time `json:"scheduledFor"`
}

// contentEditableFields 内容类实体允许内联编辑的字段
var contentEditableFields = map[string]map[string]bool{
	"articles": {
		"title":   true,
		"content": true,
		"summary": true,
		"status":  true,
	},
	"newsletters": {
		"subject":        true,
		"content":        true,
		"recipientGroup": true,
		"status":         true,
	},
	"socialPosts": {
		"content":  true,
		"platform": true,
		"status":   true,
	},
}

// ContentFieldEditable 判断内容实体的字段是否允许内联编辑
func ContentFieldEditable(collection, field string) bool {
	fields, ok := contentEditableFields[collection]
	return ok && fields[field]
}
