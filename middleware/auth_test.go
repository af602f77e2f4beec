package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BerniceZTT/leadgen_end/models"
	"github.com/BerniceZTT/leadgen_end/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func authedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()

	router := gin.New()
	group := router.Group("/api/leads")
	group.Use(AuthMiddleware())
	group.GET("", PermissionMiddleware("leads", "read"), func(c *gin.Context) {
		c.JSON(200, gin.H{"success": true})
	})
	group.DELETE("/all", PermissionMiddleware("newsletters", "delete"), func(c *gin.Context) {
		c.JSON(200, gin.H{"success": true})
	})
	return router
}

func marketerToken(t *testing.T) string {
	t.Helper()
	token, err := utils.GenerateToken(models.User{
		ID:       primitive.NewObjectID(),
		Username: "marketer01",
		Role:     models.UserRoleMARKETER,
	})
	require.NoError(t, err)
	return token
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	router := authedRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/leads", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "MISSING_TOKEN")
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	router := authedRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/leads", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
}

func TestAuthMiddlewareAllowsValidToken(t *testing.T) {
	router := authedRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/leads", nil)
	req.Header.Set("Authorization", "Bearer "+marketerToken(t))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPermissionMiddlewareDenies(t *testing.T) {
	router := authedRouter()

	// 市场人员没有删除简报的权限
	req := httptest.NewRequest(http.MethodDelete, "/api/leads/all", nil)
	req.Header.Set("Authorization", "Bearer "+marketerToken(t))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "INSUFFICIENT_PERMISSION")
}
