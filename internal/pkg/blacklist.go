package pkg

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/par4d15e/blogbackendserver-sub001/internal/database"
)

const (
	// 拉黑时长与访问令牌最长有效期一致
	BlacklistExpiration = 30 * time.Minute
	// 访问令牌黑名单 Redis key 前缀
	BlacklistPrefix = "blacklist:access_token:"
)

// BlacklistAccessToken 将访问令牌的 jti 拉黑, 登出后令牌在剩余有效期内不可再用
func BlacklistAccessToken(jti string) error {
	ctx := context.Background()
	key := BlacklistPrefix + jti

	return database.RedisDB.Set(ctx, key, "revoked", BlacklistExpiration).Err()
}

// IsAccessTokenBlacklisted 检查访问令牌是否已被拉黑
func IsAccessTokenBlacklisted(jti string) (bool, error) {
	ctx := context.Background()
	key := BlacklistPrefix + jti

	_, err := database.RedisDB.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}
