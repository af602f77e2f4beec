package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRole 用户角色枚举
type UserRole string

const (
	UserRoleSUPER_ADMIN UserRole = "SUPER_ADMIN" // 超级管理员
	UserRoleMARKETER    UserRole = "MARKETER"    // 市场运营人员
)

// UserStatus 用户状态枚举
type UserStatus string

const (
	UserStatusPENDING  UserStatus = "pending"
	UserStatusAPPROVED UserStatus = "approved"
	UserStatusREJECTED UserStatus = "rejected"
)

// User 用户类型
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Username  string             `bson:"username" json:"username"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"` // 不返回密码
	Role      UserRole           `bson:"role" json:"role"`
	Status    UserStatus         `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// 各种请求和响应结构
type (
	// LoginRequest 登录请求
	LoginRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	// LoginResponse 登录响应
	LoginResponse struct {
		Token string      `json:"token"`
		User  interface{} `json:"user"`
	}

	// RegisterRequest 注册请求
	RegisterRequest struct {
		Username        string `json:"username" binding:"required,min=2"`
		Email           string `json:"email" binding:"required"`
		Password        string `json:"password" binding:"required,min=6"`
		ConfirmPassword string `json:"confirmPassword" binding:"required"`
	}

	// FieldUpdateRequest 单字段内联编辑请求
	FieldUpdateRequest struct {
		Field string      `json:"field" binding:"required"`
		Value interface{} `json:"value"`
	}

	// ApprovalToggleRequest 审核开关请求，携带客户端当前看到的值，服务端写入其取反
	ApprovalToggleRequest struct {
		IsApproved bool `json:"isApproved"`
	}
)
