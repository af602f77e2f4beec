package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/BerniceZTT/leadgen_end/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callbackRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.POST("/api/callbacks/vectorize", VectorizeCallback)
	return router
}

func TestVectorizeCallbackEchoesPayload(t *testing.T) {
	router := callbackRouter()

	body := `{"status":"done","SheetID":"abc123","SheetLink":"https://sheets.example/abc123","requestId":"req-1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/callbacks/vectorize", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "done", resp["status"])
	assert.Equal(t, "abc123", resp["SheetID"])
	assert.Equal(t, "https://sheets.example/abc123", resp["SheetLink"])
	assert.Equal(t, "req-1", resp["requestId"])
}

func TestVectorizeCallbackBindsLowercaseKeys(t *testing.T) {
	router := callbackRouter()

	// 回调方键名大小写不一致时也能绑定，回包用约定的键名
	body := `{"status":"done","sheetId":"abc123","sheetLink":"https://sheets.example/abc123","requestId":"req-1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/callbacks/vectorize", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "abc123", resp["SheetID"])
	assert.Equal(t, "https://sheets.example/abc123", resp["SheetLink"])
}

func TestVectorizeCallbackMalformedPayload(t *testing.T) {
	router := callbackRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/callbacks/vectorize", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestVectorizeCallbackRejectsNonPost(t *testing.T) {
	router := callbackRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/callbacks/vectorize", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
