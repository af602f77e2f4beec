package utils

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func handleInTestContext(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/files/vectorize", nil)
	HandleError(c, err)
	return w
}

func TestHandleErrorAppErrorKeepsStatusCode(t *testing.T) {
	w := handleInTestContext(NewAppError("向量化webhook调用失败", http.StatusBadGateway, errors.New("connection refused")))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "向量化webhook调用失败")
}

func TestHandleErrorApiErrorKeepsStatusAndCode(t *testing.T) {
	w := handleInTestContext(CreateNotFoundError("线索"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "RESOURCE_NOT_FOUND")
}

func TestHandleErrorUnknownErrorIsServerError(t *testing.T) {
	w := handleInTestContext(errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
