package board

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/par4d15e/blogbackendserver-sub001/internal/cache"
	"github.com/par4d15e/blogbackendserver-sub001/internal/database"
	pkgdb "github.com/par4d15e/blogbackendserver-sub001/pkg/database"
)

func setupTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	database.RedisDB = &pkgdb.RedisClient{
		Client: redis.NewClient(&redis.Options{Addr: mr.Addr()}),
	}
	return mr
}

// 读路径的缓存 key 必须落在写路径失效的模式之内
func TestCommentCacheKeyPrefix(t *testing.T) {
	key := commentCacheKey(3, "", 10)
	assert.True(t, strings.HasPrefix(key, cache.KeyBoardComments))

	// 不同分页参数各缓存一份
	assert.NotEqual(t, commentCacheKey(3, "", 10), commentCacheKey(3, "", 20))
	assert.NotEqual(t, commentCacheKey(3, "", 10), commentCacheKey(4, "", 10))
}

func TestBoardService_InvalidateCommentCache(t *testing.T) {
	setupTestRedis(t)
	ctx := context.Background()

	key := commentCacheKey(3, "", 10)
	require.NoError(t, cache.SetJSON(ctx, key, "cached-comments", time.Minute))

	s := &BoardService{}
	s.invalidateCommentCache(3)

	var out string
	err := cache.GetJSON(ctx, key, &out)
	assert.Equal(t, cache.ErrCacheMiss, err)
}
