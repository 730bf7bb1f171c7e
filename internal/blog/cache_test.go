package blog

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/par4d15e/blogbackendserver-sub001/internal/cache"
	"github.com/par4d15e/blogbackendserver-sub001/internal/database"
	blogmodel "github.com/par4d15e/blogbackendserver-sub001/internal/model/blog"
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

// 写操作的失效必须清掉详情读路径写入的缓存 key
func TestBlogService_InvalidateDetailCache(t *testing.T) {
	setupTestRedis(t)
	ctx := context.Background()

	slug := "hello-world"
	key := cache.KeyBlogDetail + slug
	require.NoError(t, cache.SetJSON(ctx, key, "cached-detail", time.Minute))

	s := &BlogService{}
	s.invalidateDetailCache(&blogmodel.Blog{Slug: &slug})

	var out string
	err := cache.GetJSON(ctx, key, &out)
	assert.Equal(t, cache.ErrCacheMiss, err)
}

func TestBlogService_InvalidateDetailCacheNilSlug(t *testing.T) {
	setupTestRedis(t)

	s := &BlogService{}
	s.invalidateDetailCache(&blogmodel.Blog{})
}
