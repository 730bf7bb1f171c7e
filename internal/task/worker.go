package task

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/par4d15e/blogbackendserver-sub001/config"
	"github.com/par4d15e/blogbackendserver-sub001/internal/database"
	"github.com/par4d15e/blogbackendserver-sub001/internal/model/user"
	"github.com/par4d15e/blogbackendserver-sub001/pkg/email"
	"gorm.io/gorm"
)

// EmailWorker 任务流消费者, 处理邮件发送和客户端信息补全
// 主循环消费新消息, 补偿循环定期认领超时未确认的 pending 消息重试
type EmailWorker struct {
	rdb      *redis.Client
	db       *gorm.DB
	mailer   *email.Client
	consumer string
}

// NewEmailWorker 构造邮件任务消费者
func NewEmailWorker(mailer *email.Client) *EmailWorker {
	hostname, _ := os.Hostname()
	if hostname == "" {
		hostname = "worker-unknown"
	}
	return &EmailWorker{
		rdb:      database.RedisDB.Client,
		db:       database.MySQLDB,
		mailer:   mailer,
		consumer: hostname,
	}
}

func (w *EmailWorker) Start(ctx context.Context, wg *sync.WaitGroup) {
	// 确保消费者组存在
	w.rdb.XGroupCreateMkStream(ctx, EmailStreamKey, EmailGroup, "0")

	wg.Add(2)
	go w.consumeLoop(ctx, wg)
	go w.recoveryLoop(ctx, wg)
}

// consumeLoop 消费新消息
func (w *EmailWorker) consumeLoop(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		default:
			entries, err := w.rdb.XReadGroup(ctx, &redis.XReadGroupArgs{
				Group:    EmailGroup,
				Consumer: w.consumer,
				Streams:  []string{EmailStreamKey, ">"},
				Count:    10,
				Block:    2 * time.Second,
			}).Result()

			if err != nil {
				continue
			}

			for _, stream := range entries {
				w.processMessages(ctx, stream.Messages)
			}
		}
	}
}

// recoveryLoop 定期认领超时未确认的 pending 消息
func (w *EmailWorker) recoveryLoop(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pendings, err := w.rdb.XPendingExt(ctx, &redis.XPendingExtArgs{
				Stream: EmailStreamKey,
				Group:  EmailGroup,
				Idle:   60 * time.Second,
				Start:  "-",
				End:    "+",
				Count:  50,
			}).Result()

			if err != nil || len(pendings) == 0 {
				continue
			}

			var ids []string
			for _, p := range pendings {
				ids = append(ids, p.ID)
			}

			claimed, err := w.rdb.XClaim(ctx, &redis.XClaimArgs{
				Stream:   EmailStreamKey,
				Group:    EmailGroup,
				Consumer: w.consumer,
				MinIdle:  60 * time.Second,
				Messages: ids,
			}).Result()
			if err != nil {
				continue
			}

			if len(claimed) > 0 {
				w.processMessages(ctx, claimed)
			}
		}
	}
}

func (w *EmailWorker) processMessages(ctx context.Context, messages []redis.XMessage) {
	for _, msg := range messages {
		payloadStr, ok := msg.Values["payload"].(string)
		if !ok {
			logrus.Errorf("邮件任务缺少 payload 字段, id=%s, 转入死信", msg.ID)
			w.sendToDLQ(ctx, msg, "missing_payload_field")
			w.rdb.XAck(ctx, EmailStreamKey, EmailGroup, msg.ID)
			continue
		}

		var t EmailTask
		if err := json.Unmarshal([]byte(payloadStr), &t); err != nil {
			logrus.Errorf("邮件任务 payload 非法 JSON, id=%s, err=%v, 转入死信", msg.ID, err)
			w.sendToDLQ(ctx, msg, fmt.Sprintf("invalid_json_payload: %v", err))
			w.rdb.XAck(ctx, EmailStreamKey, EmailGroup, msg.ID)
			continue
		}

		if err := w.handle(t); err != nil {
			// 不 ACK, 依靠 recoveryLoop 稍后捞起重试
			logrus.WithError(err).WithFields(logrus.Fields{
				"type": t.Type,
				"to":   t.To,
			}).Error("邮件任务处理失败, 等待补偿重试")
			continue
		}

		w.rdb.XAck(ctx, EmailStreamKey, EmailGroup, msg.ID)
	}
}

// handle 按任务类型分发
func (w *EmailWorker) handle(t EmailTask) error {
	appName := config.Conf.App.Name

	switch t.Type {
	case EmailVerificationCode:
		return w.mailer.SendVerificationCode(t.To, appName, t.Code, t.ExpireMinutes)
	case EmailResetCode:
		return w.mailer.SendResetPasswordCode(t.To, appName, t.Code, t.ExpireMinutes)
	case EmailGreeting:
		return w.mailer.SendGreeting(t.To, appName, t.Username)
	case EmailInvoice:
		if t.Invoice == nil {
			return fmt.Errorf("发票任务缺少发票数据")
		}
		return w.mailer.SendInvoice(t.To, appName, *t.Invoice)
	case EmailNotification:
		return w.notifyAdmin(t)
	case EmailBroadcast:
		subject := fmt.Sprintf("[%s] %s", appName, t.Subject)
		return w.mailer.SendHTML(t.To, subject, t.Message)
	case TaskClientInfo:
		return w.enrichClientInfo(t)
	default:
		return fmt.Errorf("未知的邮件任务类型: %s", t.Type)
	}
}

// notifyAdmin 向管理员发送通知邮件
func (w *EmailWorker) notifyAdmin(t EmailTask) error {
	appName := config.Conf.App.Name

	var subject string
	switch t.NotificationType {
	case NotificationFriendRequest:
		subject = fmt.Sprintf("[%s] - 📢 好友请求", appName)
	case NotificationPaymentRequest:
		subject = fmt.Sprintf("[%s] - 💰 支付成功通知", appName)
	default:
		subject = fmt.Sprintf("[%s] - 📢 Notification", appName)
	}

	// 收件人优先用任务指定的, 否则取管理员账号邮箱
	to := t.To
	if to == "" {
		var adminUser user.User
		if err := w.db.Where("role = ?", user.RoleAdmin).First(&adminUser).Error; err != nil {
			return fmt.Errorf("未找到管理员用户: %w", err)
		}
		to = adminUser.Email
	}

	return w.mailer.SendSimple(to, subject, t.Message)
}

// sendToDLQ 转入死信流
func (w *EmailWorker) sendToDLQ(ctx context.Context, msg redis.XMessage, reason string) {
	body, _ := json.Marshal(msg.Values)

	err := w.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: EmailDLQKey,
		Values: map[string]interface{}{
			"original_msg_id": msg.ID,
			"dlq_reason":      reason,
			"body":            string(body),
		},
	}).Err()
	if err != nil {
		logrus.Errorf("死信写入失败! MsgID: %s, Error: %v", msg.ID, err)
	}
}
