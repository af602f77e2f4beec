package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BerniceZTT/leadgen_end/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestToggleApprovalDoubleToggleRestoresOriginal(t *testing.T) {
	store := newFakeStore()
	id := primitive.NewObjectID()
	store.add(repository.ArticlesCollection, bson.M{
		"_id":        id,
		"userId":     "user-1",
		"title":      "五月营销复盘",
		"isApproved": false,
	})
	store.install(t)

	router := authedRouter("user-1", "MARKETER")
	router.PATCH("/api/articles/:id/approval", ToggleArticleApproval)

	// 第一次开关：写入客户端所见值的取反
	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPatch, "/api/articles/"+id.Hex()+"/approval",
		bson.M{"isApproved": false}))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, store.find(repository.ArticlesCollection, id)["isApproved"])

	// 第二次开关携带新值，连续两次开关回到原值
	w = httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPatch, "/api/articles/"+id.Hex()+"/approval",
		bson.M{"isApproved": true}))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, store.find(repository.ArticlesCollection, id)["isApproved"])
}

func TestToggleApprovalRejectsForeignRecord(t *testing.T) {
	store := newFakeStore()
	id := primitive.NewObjectID()
	store.add(repository.ArticlesCollection, bson.M{
		"_id":        id,
		"userId":     "user-2",
		"title":      "五月营销复盘",
		"isApproved": false,
	})
	store.install(t)

	router := authedRouter("user-1", "MARKETER")
	router.PATCH("/api/articles/:id/approval", ToggleArticleApproval)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPatch, "/api/articles/"+id.Hex()+"/approval",
		bson.M{"isApproved": false}))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, store.find(repository.ArticlesCollection, id)["isApproved"])
}

func TestUpdateContentFieldScopedToOwner(t *testing.T) {
	store := newFakeStore()
	id := primitive.NewObjectID()
	store.add(repository.NewslettersCollection, bson.M{
		"_id":     id,
		"userId":  "user-2",
		"subject": "六月简报",
	})
	store.install(t)

	router := authedRouter("user-1", "MARKETER")
	router.PATCH("/api/newsletters/:id/field", UpdateNewsletterField)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPatch, "/api/newsletters/"+id.Hex()+"/field",
		bson.M{"field": "subject", "value": "改写后的主题"}))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "六月简报", store.find(repository.NewslettersCollection, id)["subject"])
}
