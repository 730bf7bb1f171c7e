package task

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/par4d15e/blogbackendserver-sub001/internal/database"
)

const (
	// 邮件任务流
	EmailStreamKey = "task:email"
	// 处理失败的坏消息进死信流, 人工排查
	EmailDLQKey = "task:email:dlq"
	// 消费者组
	EmailGroup = "group_email_worker"
	// 流长度上限, 防止无消费者时无限堆积
	streamMaxLen = 10000
)

// EnqueueEmail 投递邮件任务到 Redis Stream
func EnqueueEmail(ctx context.Context, t EmailTask) error {
	payload, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("序列化邮件任务失败: %w", err)
	}

	return database.RedisDB.XAdd(ctx, &redis.XAddArgs{
		Stream: EmailStreamKey,
		MaxLen: streamMaxLen,
		Approx: true,
		Values: map[string]interface{}{"payload": string(payload)},
	}).Err()
}
