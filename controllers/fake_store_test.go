package controllers

import (
	"context"
	"testing"

	"github.com/BerniceZTT/leadgen_end/repository"
	"github.com/BerniceZTT/leadgen_end/utils"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeStore 内存版集合网关，处理器测试用
type fakeStore struct {
	tables map[string][]bson.M
	errs   map[string]error // 方法名 -> 注入的失败
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		tables: make(map[string][]bson.M),
		errs:   make(map[string]error),
	}
}

// install 替换包级网关入口，测试结束后恢复
func (s *fakeStore) install(t *testing.T) {
	t.Helper()
	orig := repository.Table
	repository.Table = func(name string) repository.Store {
		return &fakeTable{store: s, name: name}
	}
	t.Cleanup(func() { repository.Table = orig })
}

func (s *fakeStore) add(table string, doc bson.M) {
	s.tables[table] = append(s.tables[table], doc)
}

func (s *fakeStore) find(table string, id primitive.ObjectID) bson.M {
	for _, doc := range s.tables[table] {
		if doc["_id"] == id {
			return doc
		}
	}
	return nil
}

type fakeTable struct {
	store *fakeStore
	name  string
}

func matchDoc(doc bson.M, filter repository.Filter) bool {
	for k, v := range filter.Eq {
		if doc[k] != v {
			return false
		}
	}
	for k, vals := range filter.In {
		found := false
		for _, v := range vals {
			if doc[k] == v {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func toDoc(v interface{}) (bson.M, error) {
	data, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	if err := bson.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (t *fakeTable) Select(ctx context.Context, filter repository.Filter, sortField string, descending bool, out interface{}) error {
	return t.store.errs["Select"]
}

func (t *fakeTable) SelectOne(ctx context.Context, filter repository.Filter, out interface{}) error {
	for _, doc := range t.store.tables[t.name] {
		if matchDoc(doc, filter) {
			data, err := bson.Marshal(doc)
			if err != nil {
				return err
			}
			return bson.Unmarshal(data, out)
		}
	}
	return utils.CreateNotFoundError("记录")
}

func (t *fakeTable) Insert(ctx context.Context, doc interface{}) (primitive.ObjectID, error) {
	if err := t.store.errs["Insert"]; err != nil {
		return primitive.NilObjectID, err
	}
	m, err := toDoc(doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id := primitive.NewObjectID()
	m["_id"] = id
	t.store.add(t.name, m)
	return id, nil
}

func (t *fakeTable) InsertMany(ctx context.Context, docs []interface{}) (int, error) {
	for _, doc := range docs {
		if _, err := t.Insert(ctx, doc); err != nil {
			return 0, err
		}
	}
	return len(docs), nil
}

func (t *fakeTable) UpdateOne(ctx context.Context, filter repository.Filter, patch bson.M) (int64, error) {
	if err := t.store.errs["UpdateOne"]; err != nil {
		return 0, err
	}
	for _, doc := range t.store.tables[t.name] {
		if matchDoc(doc, filter) {
			for k, v := range patch {
				doc[k] = v
			}
			return 1, nil
		}
	}
	return 0, nil
}

func (t *fakeTable) UpdateMany(ctx context.Context, filter repository.Filter, patch bson.M) (int64, error) {
	if err := t.store.errs["UpdateMany"]; err != nil {
		return 0, err
	}
	var n int64
	for _, doc := range t.store.tables[t.name] {
		if matchDoc(doc, filter) {
			for k, v := range patch {
				doc[k] = v
			}
			n++
		}
	}
	return n, nil
}

func (t *fakeTable) DeleteOne(ctx context.Context, filter repository.Filter) (int64, error) {
	if err := t.store.errs["DeleteOne"]; err != nil {
		return 0, err
	}
	docs := t.store.tables[t.name]
	for i, doc := range docs {
		if matchDoc(doc, filter) {
			t.store.tables[t.name] = append(docs[:i:i], docs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (t *fakeTable) DeleteMany(ctx context.Context, filter repository.Filter) (int64, error) {
	if err := t.store.errs["DeleteMany"]; err != nil {
		return 0, err
	}
	kept := make([]bson.M, 0, len(t.store.tables[t.name]))
	var n int64
	for _, doc := range t.store.tables[t.name] {
		if matchDoc(doc, filter) {
			n++
			continue
		}
		kept = append(kept, doc)
	}
	t.store.tables[t.name] = kept
	return n, nil
}

func (t *fakeTable) Count(ctx context.Context, filter repository.Filter) (int64, error) {
	var n int64
	for _, doc := range t.store.tables[t.name] {
		if matchDoc(doc, filter) {
			n++
		}
	}
	return n, nil
}

// authedRouter 注入登录态的测试路由
func authedRouter(userID, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user", jwt.MapClaims{
			"id":       userID,
			"role":     role,
			"username": "tester",
		})
	})
	return router
}
