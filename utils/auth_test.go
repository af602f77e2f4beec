package utils

import (
	"testing"

	"github.com/BerniceZTT/leadgen_end/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestVerifyPassword(t *testing.T) {
	// 标准SHA-256哈希
	hashed := HashPassword("admin123")
	assert.True(t, VerifyPassword("admin123", hashed))
	assert.False(t, VerifyPassword("admin124", hashed))

	// 带盐格式
	salted := SimpleHash("secret", "abcd1234")
	assert.True(t, VerifyPassword("secret", salted))
	assert.False(t, VerifyPassword("wrong", salted))

	// 非法格式不通过
	assert.False(t, VerifyPassword("secret", "md5$abcd$ffff"))
}

func TestTokenRoundTrip(t *testing.T) {
	user := models.User{
		ID:       primitive.NewObjectID(),
		Username: "marketer01",
		Role:     models.UserRoleMARKETER,
	}

	token, err := GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims["id"])
	assert.Equal(t, "marketer01", claims["username"])
	assert.Equal(t, string(models.UserRoleMARKETER), claims["role"])
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestHasPermission(t *testing.T) {
	// 超级管理员拥有所有权限
	assert.True(t, HasPermission(models.UserRoleSUPER_ADMIN, "anything", "delete"))

	// 市场人员的常规权限
	assert.True(t, HasPermission(models.UserRoleMARKETER, "leads", "export"))
	assert.True(t, HasPermission(models.UserRoleMARKETER, "imports", "create"))
	assert.True(t, HasPermission(models.UserRoleMARKETER, "dashboard", "read"))

	// 简报不允许市场人员删除
	assert.False(t, HasPermission(models.UserRoleMARKETER, "newsletters", "delete"))

	// 未定义的资源一律拒绝
	assert.False(t, HasPermission(models.UserRoleMARKETER, "users", "read"))
	assert.False(t, HasPermission(models.UserRole("GUEST"), "leads", "read"))
}
