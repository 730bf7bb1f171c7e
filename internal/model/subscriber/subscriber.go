// Package subscriber 订阅者模型
package subscriber

import "time"

// Subscriber 订阅者表
type Subscriber struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Email          string     `gorm:"type:varchar(100);not null;uniqueIndex" json:"email"`
	SubscribedAt   time.Time  `json:"subscribed_at"`
	UnsubscribedAt *time.Time `json:"unsubscribed_at"`
	// 已发送邮件数量
	SendCount int        `gorm:"not null;default:0" json:"send_count"`
	SendAt    *time.Time `json:"send_at"`
}

func (Subscriber) TableName() string {
	return "subscribers"
}

// IsActive 当前是否处于订阅状态
func (s *Subscriber) IsActive() bool {
	return s.UnsubscribedAt == nil
}
