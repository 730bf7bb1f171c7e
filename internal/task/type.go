package task

import "github.com/par4d15e/blogbackendserver-sub001/pkg/email"

// 邮件任务类型
const (
	EmailVerificationCode = "verification_code"
	EmailResetCode        = "reset_code"
	EmailGreeting         = "greeting"
	EmailInvoice          = "invoice"
	EmailNotification     = "notification"
	EmailBroadcast        = "broadcast"
)

// TaskClientInfo 客户端信息补全任务, 与邮件任务走同一条流
const TaskClientInfo = "client_info"

// 通知类型, 用于拼接管理员通知邮件的主题
const (
	NotificationFriendRequest  = "friend_request"
	NotificationPaymentRequest = "payment_request"
	NotificationGeneric        = "generic"
)

// EmailTask 邮件任务载荷, 序列化后写入 Redis Stream
type EmailTask struct {
	Type string `json:"type"`
	To   string `json:"to"`

	// 验证码类任务
	Code          string `json:"code,omitempty"`
	ExpireMinutes int    `json:"expire_minutes,omitempty"`

	// 欢迎邮件
	Username string `json:"username,omitempty"`

	// 发票邮件
	Invoice *email.InvoiceData `json:"invoice,omitempty"`

	// 管理员通知 / 订阅者群发
	NotificationType string `json:"notification_type,omitempty"`
	Subject          string `json:"subject,omitempty"`
	Message          string `json:"message,omitempty"`

	// 客户端信息补全
	UserID    uint   `json:"user_id,omitempty"`
	IPAddress string `json:"ip_address,omitempty"`
}
