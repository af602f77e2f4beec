package repository

import (
	"context"
	"fmt"

	"github.com/BerniceZTT/leadgen_end/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Filter 表级查询条件：等值匹配 + 集合成员匹配
type Filter struct {
	Eq bson.M
	In map[string][]interface{}
}

// build 组装为bson查询条件
func (f Filter) build() bson.M {
	query := bson.M{}
	for k, v := range f.Eq {
		query[k] = v
	}
	for k, vals := range f.In {
		query[k] = bson.M{"$in": vals}
	}
	return query
}

// Store 集合网关接口，控制器经由它读写数据库
type Store interface {
	Select(ctx context.Context, filter Filter, sortField string, descending bool, out interface{}) error
	SelectOne(ctx context.Context, filter Filter, out interface{}) error
	Insert(ctx context.Context, doc interface{}) (primitive.ObjectID, error)
	InsertMany(ctx context.Context, docs []interface{}) (int, error)
	UpdateOne(ctx context.Context, filter Filter, patch bson.M) (int64, error)
	UpdateMany(ctx context.Context, filter Filter, patch bson.M) (int64, error)
	DeleteOne(ctx context.Context, filter Filter) (int64, error)
	DeleteMany(ctx context.Context, filter Filter) (int64, error)
	Count(ctx context.Context, filter Filter) (int64, error)
}

// Gateway 对单个集合的轻量数据网关，所有控制器通过它读写
type Gateway struct {
	table string
}

// Table 获取指定集合的网关，测试中可替换为内存实现
var Table = func(name string) Store {
	return &Gateway{table: name}
}

// Select 查询集合，支持排序
func (g *Gateway) Select(ctx context.Context, filter Filter, sortField string, descending bool, out interface{}) error {
	findOptions := options.Find()
	if sortField != "" {
		order := 1
		if descending {
			order = -1
		}
		findOptions.SetSort(bson.M{sortField: order})
	}

	query := filter.build()

	// 读路径走重试
	_, err := ExecuteDbOperation(func() (interface{}, error) {
		cursor, err := Collection(g.table).Find(ctx, query, findOptions)
		if err != nil {
			return nil, err
		}
		defer cursor.Close(ctx)
		if err := cursor.All(ctx, out); err != nil {
			return nil, err
		}
		return out, nil
	}, 3)

	if err != nil {
		utils.LogDbOperation("find", g.table, query, nil)
		return err
	}

	return nil
}

// SelectOne 查询单条记录
func (g *Gateway) SelectOne(ctx context.Context, filter Filter, out interface{}) error {
	query := filter.build()
	err := Collection(g.table).FindOne(ctx, query).Decode(out)
	if err == mongo.ErrNoDocuments {
		return utils.CreateNotFoundError("记录")
	}
	return err
}

// Insert 插入单条记录，返回服务端分配的主键
func (g *Gateway) Insert(ctx context.Context, doc interface{}) (primitive.ObjectID, error) {
	result, err := Collection(g.table).InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("插入结果缺少ObjectID")
	}
	return id, nil
}

// InsertMany 批量插入，返回插入条数
func (g *Gateway) InsertMany(ctx context.Context, docs []interface{}) (int, error) {
	result, err := Collection(g.table).InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	return len(result.InsertedIDs), nil
}

// UpdateOne 按条件更新单条记录，patch 以 $set 写入，返回匹配条数。
// 条件未命中时返回0，调用方据此区分记录不存在或不在数据范围内。
func (g *Gateway) UpdateOne(ctx context.Context, filter Filter, patch bson.M) (int64, error) {
	result, err := Collection(g.table).UpdateOne(ctx, filter.build(), bson.M{"$set": patch})
	if err != nil {
		return 0, err
	}
	return result.MatchedCount, nil
}

// UpdateMany 按条件批量更新
func (g *Gateway) UpdateMany(ctx context.Context, filter Filter, patch bson.M) (int64, error) {
	result, err := Collection(g.table).UpdateMany(ctx, filter.build(), bson.M{"$set": patch})
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

// DeleteOne 按条件删除单条记录，返回删除条数
func (g *Gateway) DeleteOne(ctx context.Context, filter Filter) (int64, error) {
	result, err := Collection(g.table).DeleteOne(ctx, filter.build())
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// DeleteMany 按条件批量删除
func (g *Gateway) DeleteMany(ctx context.Context, filter Filter) (int64, error) {
	result, err := Collection(g.table).DeleteMany(ctx, filter.build())
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// Count 按条件统计条数
func (g *Gateway) Count(ctx context.Context, filter Filter) (int64, error) {
	count, err := ExecuteDbOperation(func() (interface{}, error) {
		return Collection(g.table).CountDocuments(ctx, filter.build())
	}, 3)
	if err != nil {
		return 0, err
	}
	return count.(int64), nil
}
