package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig Redis 连接配置, 零值字段按 applyRedisDefaults 补齐
type RedisConfig struct {
	ServiceName  string
	Host         string
	Port         int
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	MaxConnAge   time.Duration
}

// RedisClient 内嵌官方客户端, 业务侧直接调用其方法
type RedisClient struct {
	*redis.Client
}

// InitRedis 建立 Redis 连接并 Ping 验证可用性
func InitRedis(cfg *RedisConfig) (*RedisClient, error) {
	if cfg == nil {
		return nil, fmt.Errorf("配置不能为空")
	}
	applyRedisDefaults(cfg)

	client := redis.NewClient(&redis.Options{
		Addr:            fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:        cfg.Password,
		DB:              cfg.DB,
		PoolSize:        cfg.PoolSize,
		MinIdleConns:    cfg.MinIdleConns,
		ConnMaxLifetime: cfg.MaxConnAge,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("连接 Redis 失败: %v", err)
	}

	log.Printf("[%s] Redis 连接成功", cfg.ServiceName)
	return &RedisClient{Client: client}, nil
}

func applyRedisDefaults(c *RedisConfig) {
	if c.ServiceName == "" {
		c.ServiceName = "app"
	}
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 6379
	}
	if c.PoolSize == 0 {
		c.PoolSize = 10
	}
	if c.MinIdleConns == 0 {
		c.MinIdleConns = 5
	}
	if c.MaxConnAge == 0 {
		c.MaxConnAge = 1 * time.Hour
	}
}
