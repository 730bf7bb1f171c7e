package pkg

import (
	"context"
	"time"

	"github.com/par4d15e/blogbackendserver-sub001/internal/database"
)

const (
	// state 有效期, 超时未完成授权则需重新发起登录
	StateExpiration = 10 * time.Minute
	// state 在 Redis 中的 key 前缀
	StatePrefix = "auth_state:"
)

// SaveStateWithRedirect 登记 state 和登录成功后的回跳地址
// prelogin 签发 state 时写入, OAuth 回调时凭 state 取回
func SaveStateWithRedirect(state, redirectUrl string) error {
	key := StatePrefix + state
	return database.RedisDB.Set(context.Background(), key, redirectUrl, StateExpiration).Err()
}

// GetRedirectByState 校验 state 并取回回跳地址
// state 不存在或已过期时返回错误
func GetRedirectByState(state string) (string, error) {
	key := StatePrefix + state
	return database.RedisDB.Get(context.Background(), key).Result()
}

// DeleteState 登录完成后删除 state, 防止重放
func DeleteState(state string) error {
	key := StatePrefix + state
	return database.RedisDB.Del(context.Background(), key).Err()
}
