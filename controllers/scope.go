package controllers

import (
	"github.com/BerniceZTT/leadgen_end/models"
	"github.com/BerniceZTT/leadgen_end/repository"
	"github.com/BerniceZTT/leadgen_end/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ownerScope 按角色限定数据范围，超级管理员可见全部
func ownerScope(user *utils.LoginUser) repository.Filter {
	if models.UserRole(user.Role) == models.UserRoleSUPER_ADMIN {
		return repository.Filter{}
	}
	return repository.Filter{Eq: bson.M{"userId": user.ID}}
}

// ownerScopeByID 主键加数据范围条件。
// 非超级管理员只能触达自己的记录，未命中与记录不存在同样按未找到处理。
func ownerScopeByID(user *utils.LoginUser, id primitive.ObjectID) repository.Filter {
	scope := ownerScope(user)
	if scope.Eq == nil {
		scope.Eq = bson.M{}
	}
	scope.Eq["_id"] = id
	return scope
}
