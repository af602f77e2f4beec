package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BerniceZTT/leadgen_end/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func leadDoc(id primitive.ObjectID, userID, company string) bson.M {
	return bson.M{
		"_id":         id,
		"userId":      userID,
		"companyName": company,
		"status":      "new",
		"priority":    "medium",
		"notes":       "",
	}
}

func jsonRequest(method, target string, payload interface{}) *http.Request {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestDeleteLeadRejectsForeignLead(t *testing.T) {
	store := newFakeStore()
	foreign := primitive.NewObjectID()
	store.add(repository.LeadsCollection, leadDoc(foreign, "user-2", "Acme"))
	store.install(t)

	router := authedRouter("user-1", "MARKETER")
	router.DELETE("/api/leads/:id", DeleteLead)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/leads/"+foreign.Hex(), nil))

	// 他人的记录不在数据范围内，按未找到处理且不被删除
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Len(t, store.tables[repository.LeadsCollection], 1)
}

func TestDeleteLeadSuperAdminUnscoped(t *testing.T) {
	store := newFakeStore()
	foreign := primitive.NewObjectID()
	store.add(repository.LeadsCollection, leadDoc(foreign, "user-2", "Acme"))
	store.install(t)

	router := authedRouter("admin-1", "SUPER_ADMIN")
	router.DELETE("/api/leads/:id", DeleteLead)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/leads/"+foreign.Hex(), nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, store.tables[repository.LeadsCollection])
}

func TestBulkDeleteLeadsRemovesExactlySelected(t *testing.T) {
	store := newFakeStore()
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	kept := primitive.NewObjectID()
	foreign := primitive.NewObjectID()
	store.add(repository.LeadsCollection, leadDoc(a, "user-1", "Acme"))
	store.add(repository.LeadsCollection, leadDoc(b, "user-1", "Beta"))
	store.add(repository.LeadsCollection, leadDoc(kept, "user-1", "Gamma"))
	store.add(repository.LeadsCollection, leadDoc(foreign, "user-2", "Delta"))
	store.install(t)

	router := authedRouter("user-1", "MARKETER")
	router.DELETE("/api/leads/bulk", BulkDeleteLeads)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodDelete, "/api/leads/bulk",
		bson.M{"ids": []string{a.Hex(), b.Hex(), foreign.Hex()}}))

	require.Equal(t, http.StatusOK, w.Code)

	// 只删除了自己名下被选中的两条，未选中与他人的记录保留
	remaining := store.tables[repository.LeadsCollection]
	require.Len(t, remaining, 2)
	assert.NotNil(t, store.find(repository.LeadsCollection, kept))
	assert.NotNil(t, store.find(repository.LeadsCollection, foreign))
}

func TestBulkDeleteLeadsFailureKeepsLeads(t *testing.T) {
	store := newFakeStore()
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	store.add(repository.LeadsCollection, leadDoc(a, "user-1", "Acme"))
	store.add(repository.LeadsCollection, leadDoc(b, "user-1", "Beta"))
	store.errs["DeleteMany"] = errors.New("连接超时")
	store.install(t)

	router := authedRouter("user-1", "MARKETER")
	router.DELETE("/api/leads/bulk", BulkDeleteLeads)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodDelete, "/api/leads/bulk",
		bson.M{"ids": []string{a.Hex(), b.Hex()}}))

	// 删除失败时集合内容不变
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Len(t, store.tables[repository.LeadsCollection], 2)
}

func TestUpdateLeadFieldScopedToOwner(t *testing.T) {
	store := newFakeStore()
	own := primitive.NewObjectID()
	foreign := primitive.NewObjectID()
	store.add(repository.LeadsCollection, leadDoc(own, "user-1", "Acme"))
	store.add(repository.LeadsCollection, leadDoc(foreign, "user-2", "Beta"))
	store.install(t)

	router := authedRouter("user-1", "MARKETER")
	router.PATCH("/api/leads/:id/field", UpdateLeadField)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPatch, "/api/leads/"+foreign.Hex()+"/field",
		bson.M{"field": "notes", "value": "跟进两次"}))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "", store.find(repository.LeadsCollection, foreign)["notes"])

	w = httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPatch, "/api/leads/"+own.Hex()+"/field",
		bson.M{"field": "notes", "value": "跟进两次"}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "跟进两次", store.find(repository.LeadsCollection, own)["notes"])
}

func TestUpdateLeadFieldRejectsValueOutsideOptions(t *testing.T) {
	store := newFakeStore()
	own := primitive.NewObjectID()
	store.add(repository.LeadsCollection, leadDoc(own, "user-1", "Acme"))
	store.install(t)

	router := authedRouter("user-1", "MARKETER")
	router.PATCH("/api/leads/:id/field", UpdateLeadField)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(http.MethodPatch, "/api/leads/"+own.Hex()+"/field",
		bson.M{"field": "status", "value": "archived"}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "new", store.find(repository.LeadsCollection, own)["status"])
}
