// Package cache Redis 读穿缓存封装
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/par4d15e/blogbackendserver-sub001/internal/database"
)

// 缓存 key 前缀, 按业务分组便于模式失效
const (
	KeyBlogLists     = "blog_lists:"
	KeyBlogDetail    = "blog_detail:"
	KeyBlogPopular   = "blog_popular"
	KeyAdminAllUsers = "admin_all_users:"
	KeySectionTree   = "section_tree"
	KeyFriendLists   = "friend_lists"
	KeyProjectLists  = "project_lists:"
	KeyProjectDetail = "project_detail:"
	KeyBoardComments = "board_comments:"
	KeyTagLists      = "tag_lists"
)

// DefaultTTL 默认缓存时长
const DefaultTTL = 10 * time.Minute

var ErrCacheMiss = errors.New("cache miss")

// 同一 key 的并发回源合并为一次查询
var group singleflight.Group

// GetJSON 读取缓存并反序列化到 dest
func GetJSON(ctx context.Context, key string, dest any) error {
	raw, err := database.RedisDB.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return ErrCacheMiss
	}
	if err != nil {
		return err
	}

	return json.Unmarshal(raw, dest)
}

// SetJSON 序列化并写入缓存
func SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return database.RedisDB.Set(ctx, key, raw, ttl).Err()
}

// Delete 删除指定 key
func Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return database.RedisDB.Del(ctx, keys...).Err()
}

// DeletePattern 按模式删除缓存, 使用 SCAN 避免阻塞 Redis
func DeletePattern(ctx context.Context, pattern string) error {
	iter := database.RedisDB.Scan(ctx, 0, pattern, 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}

	if len(keys) == 0 {
		return nil
	}

	return database.RedisDB.Del(ctx, keys...).Err()
}

// GetOrLoad 读穿缓存: 命中直接返回, 未命中回源并写缓存
// 并发的同 key 回源由 singleflight 合并
func GetOrLoad[T any](ctx context.Context, key string, ttl time.Duration, load func() (T, error)) (T, error) {
	var cached T
	if err := GetJSON(ctx, key, &cached); err == nil {
		return cached, nil
	} else if err != ErrCacheMiss {
		logrus.WithError(err).WithField("key", key).Warn("读取缓存失败, 回源数据库")
	}

	result, err, _ := group.Do(key, func() (any, error) {
		value, err := load()
		if err != nil {
			return value, err
		}

		if err := SetJSON(ctx, key, value, ttl); err != nil {
			logrus.WithError(err).WithField("key", key).Warn("写入缓存失败")
		}

		return value, nil
	})

	if err != nil {
		var zero T
		return zero, err
	}

	return result.(T), nil
}
